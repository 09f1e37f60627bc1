package policy

import (
	"math"
	"time"

	"yatra/internal/ledger"
	"yatra/internal/shared/errs"
)

// RefundQuote is the result of evaluating a cancellation against a policy.
type RefundQuote struct {
	RefundAmount     float64 `json:"refund_amount"`
	RefundPercentage int     `json:"refund_percentage"`
	DaysToDeparture  int     `json:"days_to_departure"`
	Rule             Rule    `json:"rule"`
}

// DaysToDeparture computes ceil((departure - now) / 1 day). Negative values
// (post-departure) are returned as-is, not clamped.
func DaysToDeparture(now, departure time.Time) int {
	return int(math.Ceil(departure.Sub(now).Hours() / 24))
}

// SelectRule picks the first rule, scanning thresholds descending, whose
// threshold is <= daysToDeparture. The boundary is inclusive on the lower side.
// When daysToDeparture is below every threshold, the rule with the smallest
// threshold is the fallback, so there is never a "no rule found" outcome.
func SelectRule(rules []Rule, daysToDeparture int) Rule {
	sorted := SortedRules(rules)
	for _, rule := range sorted {
		if rule.DaysBeforeDeparture <= daysToDeparture {
			return rule
		}
	}
	return sorted[len(sorted)-1]
}

// ComputeRefund evaluates a cancellation of cancelCount out of travelerCount
// travelers against the rule set. paidToDate is the sum of completed payments
// on the booking at the time of cancellation.
//
// The proration base splits paidToDate evenly across all travelers regardless
// of individual fares: base = paidToDate / travelerCount * cancelCount. A full
// cancellation (cancelCount == travelerCount) therefore refunds against the
// whole paid amount.
func ComputeRefund(now, departure time.Time, rules []Rule, paidToDate float64, travelerCount, cancelCount int) (*RefundQuote, error) {
	if travelerCount == 0 {
		return nil, errs.Validation(errs.CodeNoTravelers, "booking has no travelers to cancel")
	}
	if len(rules) == 0 {
		return nil, errs.Validation(errs.CodeValidation, "cancellation policy has no rules")
	}

	days := DaysToDeparture(now, departure)
	rule := SelectRule(rules, days)

	base := paidToDate / float64(travelerCount) * float64(cancelCount)
	amount := ledger.RoundMoney(base * float64(rule.RefundPercentage) / 100)

	return &RefundQuote{
		RefundAmount:     amount,
		RefundPercentage: rule.RefundPercentage,
		DaysToDeparture:  days,
		Rule:             rule,
	}, nil
}
