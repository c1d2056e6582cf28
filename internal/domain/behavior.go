package domain

import "github.com/shopspring/decimal"

// ScoreMin and ScoreMax bound the happiness and burnout scalars.
const (
	ScoreMin = 0
	ScoreMax = 100
)

// ratioWindow is how many recent months of savings/leisure ratios are kept
// for trend calculations.
const ratioWindow = 6

// BehavioralState is the player's psychological state. It is mutated only
// by the behavioral engine, once per month, after settlement. The revenge
// floor and essential baseline feed back into next month's plan
// validation.
type BehavioralState struct {
	Happiness int `yaml:"happiness" json:"happiness"`
	Burnout   int `yaml:"burnout" json:"burnout"`

	// Rolling windows of recent ratios, newest last.
	RecentSavingsRates  []decimal.Decimal `yaml:"recent_savings_rates,omitempty" json:"recent_savings_rates,omitempty"`
	RecentLeisureRatios []decimal.Decimal `yaml:"recent_leisure_ratios,omitempty" json:"recent_leisure_ratios,omitempty"`

	// RevengeSpendFloor is a soft minimum on next month's leisure
	// allocation, set when low happiness triggers revenge spending.
	RevengeSpendFloor Money `yaml:"revenge_spend_floor" json:"revenge_spend_floor"`

	// EssentialBaseline is the lifestyle-creep expectation for essential
	// spending. Promotions raise it unless the frugality trait is set.
	EssentialBaseline Money `yaml:"essential_baseline" json:"essential_baseline"`
}

// NewBehavioralState returns the starting psychological state: moderate
// happiness, low burnout, baseline at the market's essential floor.
func NewBehavioralState(essentialFloor Money) BehavioralState {
	return BehavioralState{
		Happiness:         70,
		Burnout:           20,
		EssentialBaseline: essentialFloor,
	}
}

// Clone copies the state including its rolling windows.
func (b BehavioralState) Clone() BehavioralState {
	dup := b
	dup.RecentSavingsRates = append([]decimal.Decimal(nil), b.RecentSavingsRates...)
	dup.RecentLeisureRatios = append([]decimal.Decimal(nil), b.RecentLeisureRatios...)
	return dup
}

// PushSavingsRate appends to the rolling savings window.
func (b *BehavioralState) PushSavingsRate(r decimal.Decimal) {
	b.RecentSavingsRates = pushRatio(b.RecentSavingsRates, r)
}

// PushLeisureRatio appends to the rolling leisure window.
func (b *BehavioralState) PushLeisureRatio(r decimal.Decimal) {
	b.RecentLeisureRatios = pushRatio(b.RecentLeisureRatios, r)
}

func pushRatio(window []decimal.Decimal, r decimal.Decimal) []decimal.Decimal {
	window = append(window, r)
	if len(window) > ratioWindow {
		window = window[len(window)-ratioWindow:]
	}
	return window
}

// FinancialPeaceScore combines happiness with inverted burnout.
func (b BehavioralState) FinancialPeaceScore() int {
	return (b.Happiness + (ScoreMax - b.Burnout)) / 2
}

// ClampScore bounds a happiness/burnout value into the valid range.
func ClampScore(v int) int {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}
