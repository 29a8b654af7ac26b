package repository

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/analytics"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/supabase"
)

const analyticsTable = "user_analytics"

type analyticsRepository struct {
	db     *supabase.Client
	logger *logger.Logger
}

// NewAnalyticsRepository creates the PostgREST-backed analytics repository.
func NewAnalyticsRepository(db *supabase.Client, logger *logger.Logger) analytics.Repository {
	return &analyticsRepository{db: db, logger: logger}
}

func (r *analyticsRepository) Get(ctx context.Context) (*analytics.Analytics, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var row analytics.Analytics
	err = r.db.From(analyticsTable).
		Select("*").
		Eq("user_id", userID).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, mapBackendError(err, "No analytics recorded")
	}
	return &row, nil
}

func (r *analyticsRepository) Upsert(ctx context.Context, row *analytics.Analytics) (*analytics.Analytics, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	row.UserID = userID
	row.UpdatedAt = time.Now().UTC()

	var saved analytics.Analytics
	if err := r.db.From(analyticsTable).Single().Upsert(ctx, row, "user_id", &saved); err != nil {
		return nil, mapBackendError(err, "Failed to record analytics")
	}
	return &saved, nil
}

func (r *analyticsRepository) Delete(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.From(analyticsTable).
		Eq("user_id", userID).
		Delete(ctx)
	return mapBackendError(err, "Failed to delete analytics")
}
