package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yatra/pkg/cache"
)

// Service interface defines the contract for cancellation policy management.
type Service interface {
	CreatePolicy(ctx context.Context, packageID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error)
	GetPolicy(ctx context.Context, packageID uuid.UUID) (*CancellationPolicy, error)
	UpdatePolicy(ctx context.Context, packageID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error)

	// RulesForPackage returns the rule set used by the refund engine,
	// cache-aside over Redis.
	RulesForPackage(ctx context.Context, packageID uuid.UUID) ([]Rule, error)
}

// PolicyRequest carries the rule set for create/update operations.
type PolicyRequest struct {
	Rules []RuleRequest `json:"rules" binding:"required,min=1,dive"`
}

// RuleRequest is one threshold/percentage pair.
type RuleRequest struct {
	DaysBeforeDeparture int `json:"days_before_departure" binding:"min=0"`
	RefundPercentage    int `json:"refund_percentage" binding:"min=0,max=100"`
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new policy service instance. cacheService may be nil
// when Redis is unavailable; reads then go straight to the database.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) CreatePolicy(ctx context.Context, packageID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error) {
	if _, err := s.repo.GetByPackageID(ctx, packageID); err == nil {
		return nil, fmt.Errorf("cancellation policy already exists for this package")
	}

	policy := buildPolicy(packageID, req)
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, policy); err != nil {
		return nil, fmt.Errorf("failed to create cancellation policy: %w", err)
	}

	s.invalidate(ctx, packageID)
	return policy, nil
}

func (s *service) GetPolicy(ctx context.Context, packageID uuid.UUID) (*CancellationPolicy, error) {
	return s.repo.GetByPackageID(ctx, packageID)
}

func (s *service) UpdatePolicy(ctx context.Context, packageID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error) {
	existing, err := s.repo.GetByPackageID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	replacement := buildPolicy(packageID, req)
	if err := replacement.Validate(); err != nil {
		return nil, err
	}

	existing.Rules = replacement.Rules
	for i := range existing.Rules {
		existing.Rules[i].PolicyID = existing.ID
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update cancellation policy: %w", err)
	}

	s.invalidate(ctx, packageID)
	return existing, nil
}

func (s *service) RulesForPackage(ctx context.Context, packageID uuid.UUID) ([]Rule, error) {
	if s.cache == nil {
		policy, err := s.repo.GetByPackageID(ctx, packageID)
		if err != nil {
			return nil, err
		}
		return policy.Rules, nil
	}

	var rules []Rule
	err := s.cache.GetOrSet(ctx, cache.PolicyRulesKey(packageID.String()), 10*time.Minute,
		func() (interface{}, error) {
			policy, err := s.repo.GetByPackageID(ctx, packageID)
			if err != nil {
				return nil, err
			}
			return policy.Rules, nil
		}, &rules)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *service) invalidate(ctx context.Context, packageID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cache.PolicyRulesKey(packageID.String()))
	}
}

func buildPolicy(packageID uuid.UUID, req PolicyRequest) *CancellationPolicy {
	policy := &CancellationPolicy{
		ID:        uuid.New(),
		PackageID: packageID,
	}
	for _, r := range req.Rules {
		policy.Rules = append(policy.Rules, Rule{
			ID:                  uuid.New(),
			PolicyID:            policy.ID,
			DaysBeforeDeparture: r.DaysBeforeDeparture,
			RefundPercentage:    r.RefundPercentage,
		})
	}
	return policy
}
