package domain

import "github.com/shopspring/decimal"

// TaxBreakdown itemizes one month's levies. Total is always the sum of
// the three components.
type TaxBreakdown struct {
	IncomeTax       Money `yaml:"income_tax" json:"income_tax"`
	SocialInsurance Money `yaml:"social_insurance" json:"social_insurance"`
	HealthInsurance Money `yaml:"health_insurance" json:"health_insurance"`
	Total           Money `yaml:"total" json:"total"`
}

// ContributionOutcome records what happened to one account-contribution
// intent. A rejected contribution leaves the balance unchanged and
// reports the remaining annual headroom instead of silently dropping the
// excess.
type ContributionOutcome struct {
	Account      AccountType `yaml:"account" json:"account"`
	Requested    Money       `yaml:"requested" json:"requested"`
	Applied      Money       `yaml:"applied" json:"applied"`
	Rejected     Money       `yaml:"rejected" json:"rejected"`
	RemainingCap Money       `yaml:"remaining_cap" json:"remaining_cap"`
	StateMatch   Money       `yaml:"state_match" json:"state_match"`
}

// DisposalOutcome records a sale out of a lot-tracked account.
type DisposalOutcome struct {
	Account       AccountType `yaml:"account" json:"account"`
	GrossProceeds Money       `yaml:"gross_proceeds" json:"gross_proceeds"`
	Tax           Money       `yaml:"tax" json:"tax"`
	NetProceeds   Money       `yaml:"net_proceeds" json:"net_proceeds"`
	LotsConsumed  int         `yaml:"lots_consumed" json:"lots_consumed"`
}

// EventOutcome records one interrupt event applied during execution.
type EventOutcome struct {
	Name      string `yaml:"name" json:"name"`
	CashDelta Money  `yaml:"cash_delta" json:"cash_delta"`
	// MarketRate scales taxable lots when the event is a market move
	// (e.g. 0.03 for a 3% rally). Zero for pure cash events.
	MarketRate decimal.Decimal `yaml:"market_rate,omitempty" json:"market_rate,omitempty"`
}

// SettlementReport is the immutable record of one month's computation.
type SettlementReport struct {
	Month         MonthDate             `yaml:"month" json:"month"`
	GrossIncome   Money                 `yaml:"gross_income" json:"gross_income"`
	Taxes         TaxBreakdown          `yaml:"taxes" json:"taxes"`
	NetIncome     Money                 `yaml:"net_income" json:"net_income"`
	Contributions []ContributionOutcome `yaml:"contributions,omitempty" json:"contributions,omitempty"`
	Disposals     []DisposalOutcome     `yaml:"disposals,omitempty" json:"disposals,omitempty"`
	Expenses      ExpenseBreakdown      `yaml:"expenses" json:"expenses"`
	MovingCost    Money                 `yaml:"moving_cost" json:"moving_cost"`
	Events        []EventOutcome        `yaml:"events,omitempty" json:"events,omitempty"`
	NetCashDelta  Money                 `yaml:"net_cash_delta" json:"net_cash_delta"`
	EndingCash    Money                 `yaml:"ending_cash" json:"ending_cash"`

	HappinessDelta int `yaml:"happiness_delta" json:"happiness_delta"`
	BurnoutDelta   int `yaml:"burnout_delta" json:"burnout_delta"`
	FinancialPeace int `yaml:"financial_peace" json:"financial_peace"`
}

// TotalContributed sums all applied contributions (the player's own money,
// excluding state matches).
func (r *SettlementReport) TotalContributed() Money {
	total := MoneyZero
	for _, c := range r.Contributions {
		total = total.Add(c.Applied)
	}
	return total
}

// SavingsRate is the share of net income not consumed by expenses.
// Contributions count as savings, so the rate is simply
// (net income - expenses) / net income. May be negative in an overdraft
// month; zero when there is no net income.
func (r *SettlementReport) SavingsRate() decimal.Decimal {
	return r.NetIncome.Sub(r.Expenses.Total).Ratio(r.NetIncome)
}

// LeisureRatio is leisure spending relative to net income.
func (r *SettlementReport) LeisureRatio() decimal.Decimal {
	return r.Expenses.Category(CategoryLeisure).Ratio(r.NetIncome)
}

// SavedGame is the logical shape handed to the storage collaborator. The
// encoding format is the collaborator's concern.
type SavedGame struct {
	ID       string               `yaml:"id" json:"id"`
	MarketID string               `yaml:"market_id" json:"market_id"`
	Profile  PlayerProfile        `yaml:"profile" json:"profile"`
	History  []*FinancialSnapshot `yaml:"history" json:"history"`
	Behavior BehavioralState      `yaml:"behavior" json:"behavior"`
	Unlocked []string             `yaml:"unlocked" json:"unlocked"`
}
