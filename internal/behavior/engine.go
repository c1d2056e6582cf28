// Package behavior updates the player's psychological state from each
// month's settlement outcome and emits the modifiers (revenge-spending
// floor, lifestyle-creep baseline) that feed back into next month's plan
// validation.
package behavior

import (
	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
)

// Engine holds the feedback thresholds. Advance is a pure function of
// (previous state, report, draw); the probabilistic revenge trigger takes
// its draw from the session's seeded source so runs are reproducible.
type Engine struct {
	// SavingsBurnoutThreshold: saving above this share of net income
	// grinds the player down.
	SavingsBurnoutThreshold decimal.Decimal
	// LeisureHappinessThreshold: leisure spend above this share of net
	// income lifts happiness.
	LeisureHappinessThreshold decimal.Decimal
	// RevengeHappinessThreshold: below this happiness, revenge spending
	// may trigger.
	RevengeHappinessThreshold int
	// RevengeChance is the per-month trigger probability once below the
	// threshold.
	RevengeChance float64
	// RevengeFloorRate sizes the forced leisure floor as a share of net
	// income.
	RevengeFloorRate decimal.Decimal
	// CreepRate is the share of a raise added to the essential baseline
	// on promotion.
	CreepRate decimal.Decimal
}

// NewEngine returns the default tuning.
func NewEngine() *Engine {
	return &Engine{
		SavingsBurnoutThreshold:   decimal.NewFromFloat(0.50),
		LeisureHappinessThreshold: decimal.NewFromFloat(0.15),
		RevengeHappinessThreshold: 40,
		RevengeChance:             0.35,
		RevengeFloorRate:          decimal.NewFromFloat(0.10),
		CreepRate:                 decimal.NewFromFloat(0.30),
	}
}

// Advance computes the next behavioral state. draw is a uniform [0,1)
// value from the session's seeded source.
func (e *Engine) Advance(prev domain.BehavioralState, report *domain.SettlementReport, draw float64) domain.BehavioralState {
	next := prev.Clone()

	savingsRate := report.SavingsRate()
	leisureRatio := report.LeisureRatio()
	next.PushSavingsRate(savingsRate)
	next.PushLeisureRatio(leisureRatio)

	happiness := next.Happiness
	burnout := next.Burnout

	if savingsRate.GreaterThan(e.SavingsBurnoutThreshold) {
		burnout += 4
	} else {
		burnout -= 2
	}

	if leisureRatio.GreaterThan(e.LeisureHappinessThreshold) {
		happiness += 3
	} else {
		happiness -= 2
	}

	// Overdraft is a stress signal on top of everything else.
	if report.EndingCash.IsNegative() {
		happiness -= 5
		burnout += 6
	}

	next.Happiness = domain.ClampScore(happiness)
	next.Burnout = domain.ClampScore(burnout)

	// Revenge spending: low happiness can force next month's leisure
	// minimum up. The floor clears on any month it does not trigger.
	next.RevengeSpendFloor = domain.MoneyZero
	if next.Happiness < e.RevengeHappinessThreshold && draw < e.RevengeChance {
		next.RevengeSpendFloor = report.NetIncome.MulRate(e.RevengeFloorRate).Round(2)
	}

	return next
}

// ApplyPromotion applies lifestyle creep for one promotion event: the
// essential expectation baseline rises by a share of the raise unless the
// frugality trait is set. Applied once per promotion, never cumulatively
// per month. Promotions always lift happiness a little.
func (e *Engine) ApplyPromotion(state domain.BehavioralState, oldSalary, newSalary domain.Money, frugal bool) domain.BehavioralState {
	next := state.Clone()
	raise := newSalary.Sub(oldSalary)
	if !raise.IsPositive() {
		return next
	}
	next.Happiness = domain.ClampScore(next.Happiness + 5)
	if !frugal {
		next.EssentialBaseline = next.EssentialBaseline.Add(raise.MulRate(e.CreepRate).Round(2))
	}
	return next
}
