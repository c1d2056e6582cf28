// Package milestone derives FIRE-progress metrics and achievement
// unlocks from the snapshot history. Everything here is read-only and
// idempotent: evaluating the same history twice yields the same result.
package milestone

import (
	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
)

// trailingMonths is the window for the trailing expense average.
const trailingMonths = 12

// FIREMetrics are pure formulas over the latest snapshot and a trailing
// expense average.
type FIREMetrics struct {
	Portfolio               domain.Money    `yaml:"portfolio" json:"portfolio"`
	TrailingMonthlyExpenses domain.Money    `yaml:"trailing_monthly_expenses" json:"trailing_monthly_expenses"`
	TrailingEssential       domain.Money    `yaml:"trailing_essential" json:"trailing_essential"`
	FIRENumber              domain.Money    `yaml:"fire_number" json:"fire_number"`
	Progress                decimal.Decimal `yaml:"progress" json:"progress"`

	CoastFIRE   bool `yaml:"coast_fire" json:"coast_fire"`
	BaristaFIRE bool `yaml:"barista_fire" json:"barista_fire"`
	LeanFIRE    bool `yaml:"lean_fire" json:"lean_fire"`
	FIRE        bool `yaml:"fire" json:"fire"`
}

// Assumptions parameterize the projections.
type Assumptions struct {
	// TargetAge is the age Coast FIRE projects to.
	TargetAge int
	// AnnualGrowth is the assumed real portfolio growth rate.
	AnnualGrowth decimal.Decimal
	// SafeWithdrawalRate is the annual withdrawal rate for Barista/Lean
	// coverage.
	SafeWithdrawalRate decimal.Decimal
}

// DefaultAssumptions: 5% real growth, 4% SWR, coast to the usual
// retirement horizon.
func DefaultAssumptions(targetAge int) Assumptions {
	return Assumptions{
		TargetAge:          targetAge,
		AnnualGrowth:       decimal.NewFromFloat(0.05),
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
	}
}

// EvaluateFIRE computes the metrics from the latest snapshot, the report
// history (for the trailing expense average) and the player's age.
func EvaluateFIRE(latest *domain.FinancialSnapshot, reports []*domain.SettlementReport, age int, a Assumptions) FIREMetrics {
	metrics := FIREMetrics{Portfolio: latest.Portfolio()}
	metrics.TrailingMonthlyExpenses = trailingAverage(reports, func(r *domain.SettlementReport) domain.Money {
		return r.Expenses.Total
	})
	metrics.TrailingEssential = trailingAverage(reports, func(r *domain.SettlementReport) domain.Money {
		return r.Expenses.Essential()
	})

	annualExpenses := metrics.TrailingMonthlyExpenses.MulInt(12)
	metrics.FIRENumber = annualExpenses.MulInt(25)
	if metrics.FIRENumber.IsPositive() {
		metrics.Progress = metrics.Portfolio.Ratio(metrics.FIRENumber)
	}

	// FIRE: portfolio covers 25x trailing annual expenses.
	metrics.FIRE = metrics.FIRENumber.IsPositive() &&
		metrics.Portfolio.GreaterThanOrEqual(metrics.FIRENumber)

	// Coast FIRE: zero further contribution still reaches the FIRE
	// number by the target age.
	yearsLeft := a.TargetAge - age
	if yearsLeft >= 0 && metrics.FIRENumber.IsPositive() {
		growth := decimal.NewFromInt(1).Add(a.AnnualGrowth).Pow(decimal.NewFromInt(int64(yearsLeft)))
		projected := metrics.Portfolio.MulRate(growth)
		metrics.CoastFIRE = projected.GreaterThanOrEqual(metrics.FIRENumber)
	}

	// Barista FIRE: safe withdrawal covers half of trailing expenses.
	// Lean FIRE: safe withdrawal covers all essential-only expenses.
	monthlySWR := metrics.Portfolio.MulRate(a.SafeWithdrawalRate).DivInt(12)
	if metrics.TrailingMonthlyExpenses.IsPositive() {
		half := metrics.TrailingMonthlyExpenses.DivInt(2)
		metrics.BaristaFIRE = monthlySWR.GreaterThanOrEqual(half)
	}
	if metrics.TrailingEssential.IsPositive() {
		metrics.LeanFIRE = monthlySWR.GreaterThanOrEqual(metrics.TrailingEssential)
	}
	return metrics
}

func trailingAverage(reports []*domain.SettlementReport, pick func(*domain.SettlementReport) domain.Money) domain.Money {
	if len(reports) == 0 {
		return domain.MoneyZero
	}
	start := 0
	if len(reports) > trailingMonths {
		start = len(reports) - trailingMonths
	}
	window := reports[start:]
	total := domain.MoneyZero
	for _, r := range window {
		total = total.Add(pick(r))
	}
	return total.DivInt(int64(len(window))).Round(2)
}
