package policy

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"yatra/internal/shared/errs"
)

// CancellationPolicy is the ordered rule set governing refunds for one travel
// package.
type CancellationPolicy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"package_id"`
	Rules     []Rule    `gorm:"foreignKey:PolicyID;constraint:OnDelete:CASCADE;" json:"rules"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rule maps a day-before-departure threshold to a refund percentage.
type Rule struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PolicyID            uuid.UUID `gorm:"type:uuid;index;not null" json:"policy_id"`
	DaysBeforeDeparture int       `gorm:"not null" json:"days_before_departure"`
	RefundPercentage    int       `gorm:"not null" json:"refund_percentage"`
}

func (CancellationPolicy) TableName() string {
	return "cancellation_policies"
}

func (Rule) TableName() string {
	return "cancellation_policy_rules"
}

// Validate checks the rule-set invariants: at least one rule, percentages in
// 0..100, and no duplicate thresholds. The rule with the smallest threshold
// acts as the fallback, so a valid policy always yields a defined answer.
func (p *CancellationPolicy) Validate() error {
	if len(p.Rules) == 0 {
		return errs.Validation(errs.CodeValidation, "cancellation policy must have at least one rule")
	}

	seen := make(map[int]bool, len(p.Rules))
	for _, rule := range p.Rules {
		if rule.DaysBeforeDeparture < 0 {
			return errs.Validation(errs.CodeValidation,
				fmt.Sprintf("rule threshold must be >= 0, got %d", rule.DaysBeforeDeparture))
		}
		if rule.RefundPercentage < 0 || rule.RefundPercentage > 100 {
			return errs.Validation(errs.CodeValidation,
				fmt.Sprintf("refund percentage must be between 0 and 100, got %d", rule.RefundPercentage))
		}
		if seen[rule.DaysBeforeDeparture] {
			return errs.Validation(errs.CodeValidation,
				fmt.Sprintf("duplicate rule threshold: %d days", rule.DaysBeforeDeparture))
		}
		seen[rule.DaysBeforeDeparture] = true
	}

	return nil
}

// SortedRules returns the rules ordered by threshold descending, the order the
// engine evaluates them in.
func SortedRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DaysBeforeDeparture > sorted[j].DaysBeforeDeparture
	})
	return sorted
}
