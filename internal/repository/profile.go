package repository

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/profile"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/supabase"
)

const profilesTable = "user_profiles"

type profileRepository struct {
	db     *supabase.Client
	logger *logger.Logger
}

// NewProfileRepository creates the PostgREST-backed profile repository.
func NewProfileRepository(db *supabase.Client, logger *logger.Logger) profile.Repository {
	return &profileRepository{db: db, logger: logger}
}

func (r *profileRepository) Get(ctx context.Context) (*profile.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var row profile.Profile
	err = r.db.From(profilesTable).
		Select("*").
		Eq("user_id", userID).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, mapBackendError(err, "No profile saved")
	}
	return &row, nil
}

func (r *profileRepository) Upsert(ctx context.Context, row *profile.Profile) (*profile.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	row.UserID = userID
	row.UpdatedAt = time.Now().UTC()

	var saved profile.Profile
	if err := r.db.From(profilesTable).Single().Upsert(ctx, row, "user_id", &saved); err != nil {
		return nil, mapBackendError(err, "Failed to save profile")
	}
	return &saved, nil
}

func (r *profileRepository) Delete(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.From(profilesTable).
		Eq("user_id", userID).
		Delete(ctx)
	return mapBackendError(err, "Failed to delete profile")
}
