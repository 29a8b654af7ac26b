package service

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/analytics"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// AnalyticsService tracks per-user usage counters.
type AnalyticsService interface {
	// GetUserAnalytics returns the user's usage row, or a zero-usage
	// default when none exists yet.
	GetUserAnalytics(ctx context.Context) (*analytics.Analytics, error)

	IncrementInvoicesCreated(ctx context.Context) (*analytics.Analytics, error)
	IncrementPDFExports(ctx context.Context) (*analytics.Analytics, error)
}

type analyticsService struct {
	ServiceParams
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(params ServiceParams) AnalyticsService {
	return &analyticsService{ServiceParams: params}
}

func (s *analyticsService) GetUserAnalytics(ctx context.Context) (*analytics.Analytics, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("view usage")
	}

	row, err := s.AnalyticsRepo.Get(ctx)
	if err != nil {
		if ierr.IsNotFound(err) {
			return analytics.Default(types.GetUserID(ctx)), nil
		}
		return nil, err
	}
	return row, nil
}

func (s *analyticsService) IncrementInvoicesCreated(ctx context.Context) (*analytics.Analytics, error) {
	return s.mutate(ctx, func(row *analytics.Analytics) {
		row.InvoicesCreated++
	})
}

func (s *analyticsService) IncrementPDFExports(ctx context.Context) (*analytics.Analytics, error) {
	return s.mutate(ctx, func(row *analytics.Analytics) {
		row.PDFExports++
	})
}

// mutate applies fn to the current row and upserts it, stamping activity
// times.
func (s *analyticsService) mutate(ctx context.Context, fn func(*analytics.Analytics)) (*analytics.Analytics, error) {
	row, err := s.GetUserAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	fn(row)
	now := time.Now().UTC()
	row.LastActiveAt = now
	row.UpdatedAt = now

	return s.AnalyticsRepo.Upsert(ctx, row)
}
