package engine

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/market"
)

// Interrupt events are a pure function of (seed, month index): the same
// seed and decision sequence always replays the same events, so runs are
// fully reproducible. Cash amounts scale with the market's essential
// floor to stay currency-neutral.

const interruptChance = 0.25

type eventTemplate struct {
	name string
	// floorMultiple sizes the cash delta in multiples of the market's
	// essential floor; negative is an expense.
	floorMultiple int64
	// marketRate makes the event a portfolio move instead of a cash
	// delta.
	marketRate float64
}

var eventTemplates = []eventTemplate{
	{name: "car_repair", floorMultiple: -2},
	{name: "medical_bill", floorMultiple: -1},
	{name: "appliance_breakdown", floorMultiple: -1},
	{name: "performance_bonus", floorMultiple: 3},
	{name: "market_rally", marketRate: 0.03},
	{name: "market_dip", marketRate: -0.04},
}

// monthRand derives the month's random source. Mixing the month index
// into the seed keeps months independent while staying reproducible.
func monthRand(seed int64, monthIndex int) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(monthIndex)*0x9E3779B9))
}

// interruptEvents rolls the month's interrupt events, at most one per
// month.
func interruptEvents(seed int64, monthIndex int, provider market.Provider) []domain.EventOutcome {
	rng := monthRand(seed, monthIndex)
	if rng.Float64() >= interruptChance {
		return nil
	}
	tpl := eventTemplates[rng.Intn(len(eventTemplates))]
	outcome := domain.EventOutcome{Name: tpl.name}
	if tpl.marketRate != 0 {
		outcome.MarketRate = decimal.NewFromFloat(tpl.marketRate)
	} else {
		outcome.CashDelta = provider.EssentialFloor().MulInt(tpl.floorMultiple)
	}
	return []domain.EventOutcome{outcome}
}

// behaviorDraw yields the month's uniform draw for the probabilistic
// revenge-spending trigger, from the same seeded stream family but offset
// so it never collides with event rolls.
func behaviorDraw(seed int64, monthIndex int) float64 {
	return monthRand(seed^0x5DEECE66D, monthIndex).Float64()
}
