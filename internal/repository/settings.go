package repository

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/settings"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/supabase"
)

const settingsTable = "user_settings"

type settingsRepository struct {
	db     *supabase.Client
	logger *logger.Logger
}

// NewSettingsRepository creates the PostgREST-backed settings repository.
func NewSettingsRepository(db *supabase.Client, logger *logger.Logger) settings.Repository {
	return &settingsRepository{db: db, logger: logger}
}

func (r *settingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var row settings.Settings
	err = r.db.From(settingsTable).
		Select("*").
		Eq("user_id", userID).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, mapBackendError(err, "No settings saved")
	}
	return &row, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, row *settings.Settings) (*settings.Settings, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	row.UserID = userID
	row.UpdatedAt = time.Now().UTC()

	var saved settings.Settings
	if err := r.db.From(settingsTable).Single().Upsert(ctx, row, "user_id", &saved); err != nil {
		return nil, mapBackendError(err, "Failed to save settings")
	}
	return &saved, nil
}

func (r *settingsRepository) Delete(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.From(settingsTable).
		Eq("user_id", userID).
		Delete(ctx)
	return mapBackendError(err, "Failed to delete settings")
}
