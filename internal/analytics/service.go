package analytics

import (
	"context"
	"time"

	"yatra/pkg/cache"
)

const dashboardCacheTTL = 2 * time.Minute

// Service interface defines the contract for reporting queries.
type Service interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new analytics service instance. cacheService may be nil.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	if s.cache == nil {
		return s.buildDashboard(ctx)
	}

	var dashboard Dashboard
	err := s.cache.GetOrSet(ctx, cache.DashboardKey(), dashboardCacheTTL,
		func() (interface{}, error) {
			return s.buildDashboard(ctx)
		}, &dashboard)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *service) buildDashboard(ctx context.Context) (*Dashboard, error) {
	bookingStats, err := s.repo.GetBookingStats(ctx)
	if err != nil {
		return nil, err
	}

	refundStats, err := s.repo.GetRefundStats(ctx)
	if err != nil {
		return nil, err
	}

	topPackages, err := s.repo.GetTopPackages(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Bookings:    *bookingStats,
		Refunds:     *refundStats,
		TopPackages: topPackages,
	}, nil
}
