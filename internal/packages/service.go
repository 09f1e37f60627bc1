package packages

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yatra/pkg/cache"
)

// Service interface defines the read-side contract for travel packages.
type Service interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*TravelPackage, error)
	ListPackages(ctx context.Context, page, limit int) ([]TravelPackage, int64, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new package service instance. cacheService may be nil.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) GetPackage(ctx context.Context, id uuid.UUID) (*TravelPackage, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var pkg TravelPackage
	err := s.cache.GetOrSet(ctx, cache.PackageKey(id.String()), 5*time.Minute,
		func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &pkg)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *service) ListPackages(ctx context.Context, page, limit int) ([]TravelPackage, int64, error) {
	return s.repo.ListPublished(ctx, page, limit)
}
