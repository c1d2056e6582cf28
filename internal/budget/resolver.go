// Package budget validates monthly budget plans against the active
// market's floors and the player's means, and resolves them into the
// expense breakdown consumed by settlement.
package budget

import (
	"fmt"

	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/market"
)

// Resolver applies fixed (housing) and variable (per-category) expense
// plans. It never mutates financial state; rejection is a typed
// ValidationError the player corrects.
type Resolver struct {
	provider market.Provider
}

// NewResolver creates a resolver for the active market.
func NewResolver(provider market.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// EssentialFloor is the effective minimum for the Essential category:
// the market floor raised by the lifestyle-creep baseline.
func (r *Resolver) EssentialFloor(behavior domain.BehavioralState) domain.Money {
	return domain.MaxMoney(r.provider.EssentialFloor(), behavior.EssentialBaseline)
}

// ValidatePlan checks a plan before it is accepted: only known
// categories, no negative allocations, the Essential floor, the
// revenge-spending leisure floor, and that total outflow (plan + housing
// + contributions + moving cost) does not exceed cash on hand plus
// expected net income. housing is the housing active AFTER the plan's
// actions run, so a move is priced at the new recurring cost, not the
// old one.
func (r *Resolver) ValidatePlan(
	plan domain.BudgetPlan,
	snapshot *domain.FinancialSnapshot,
	housing *domain.Housing,
	expectedNet domain.Money,
	behavior domain.BehavioralState,
	plannedContributions domain.Money,
	movingCost domain.Money,
) error {
	for c := range plan {
		if !domain.IsExpenseCategory(c) {
			return &domain.ValidationError{
				Field:  string(c),
				Reason: "unknown expense category",
			}
		}
	}
	for _, c := range domain.ExpenseCategories {
		if plan.Get(c).IsNegative() {
			return &domain.ValidationError{
				Field:  string(c),
				Reason: "allocation must not be negative",
			}
		}
	}

	floor := r.EssentialFloor(behavior)
	if plan.Get(domain.CategoryEssential).LessThan(floor) {
		return &domain.ValidationError{
			Field:  string(domain.CategoryEssential),
			Reason: fmt.Sprintf("allocation %s is below the minimum %s", plan.Get(domain.CategoryEssential), floor),
		}
	}

	// Revenge spending raises a soft floor on leisure for the month.
	if behavior.RevengeSpendFloor.IsPositive() &&
		plan.Get(domain.CategoryLeisure).LessThan(behavior.RevengeSpendFloor) {
		return &domain.ValidationError{
			Field:  string(domain.CategoryLeisure),
			Reason: fmt.Sprintf("allocation %s is below the revenge-spending minimum %s", plan.Get(domain.CategoryLeisure), behavior.RevengeSpendFloor),
		}
	}

	housingCost := domain.MoneyZero
	if housing != nil {
		housingCost = housing.TotalMonthlyCost()
	}
	available := snapshot.Cash.Add(expectedNet)
	committed := plan.Total().Add(housingCost).Add(plannedContributions).Add(movingCost)
	if committed.GreaterThan(available) {
		return &domain.ValidationError{
			Field:  "plan",
			Reason: fmt.Sprintf("total outflow %s exceeds available funds %s", committed, available),
		}
	}
	return nil
}

// Resolve turns an accepted plan plus the active housing into the
// month's expense breakdown. Allocations are spent in full; unspent
// tracking is the planning UI's concern.
func (r *Resolver) Resolve(plan domain.BudgetPlan, housing *domain.Housing) domain.ExpenseBreakdown {
	breakdown := domain.ExpenseBreakdown{
		ByCategory: make(map[domain.ExpenseCategory]domain.Money, len(domain.ExpenseCategories)),
	}
	if housing != nil {
		breakdown.Housing = housing.TotalMonthlyCost()
	}
	total := breakdown.Housing
	for _, c := range domain.ExpenseCategories {
		amount := plan.Get(c)
		breakdown.ByCategory[c] = amount
		total = total.Add(amount)
	}
	breakdown.Total = total
	return breakdown
}

// MovingCost prices a housing change under the market's formula. Charged
// once at the moment of the change, separate from the recurring expense.
func (r *Resolver) MovingCost(h domain.Housing) domain.Money {
	return h.MovingCost(r.provider.MovingDepositMonths(), r.provider.MovingFee())
}
