package domain

// AccountType identifies a market-specific account (e.g. "third_pillar",
// "401k", "isa"). The set of valid types comes from the active market's
// rule set; an unknown type is a configuration error.
type AccountType string

// AccountClass groups account types by their role, independent of the
// market-specific identifier.
type AccountClass string

const (
	// ClassTaxable is a regular brokerage holding; disposals may owe
	// capital-gains tax subject to the market's holding-period rule.
	ClassTaxable AccountClass = "taxable"
	// ClassRetirement is a tax-advantaged retirement vehicle.
	ClassRetirement AccountClass = "retirement"
	// ClassSavings is a state-matched savings vehicle.
	ClassSavings AccountClass = "savings"
	// ClassEmergency is a liquid emergency fund.
	ClassEmergency AccountClass = "emergency"
)

// Lot is a single acquisition inside an account. Holding-period rules are
// evaluated lot by lot; lots with different acquisition dates are never
// averaged together.
type Lot struct {
	Amount     Money     `yaml:"amount" json:"amount"`           // current value
	CostBasis  Money     `yaml:"cost_basis" json:"cost_basis"`   // contributed value
	AcquiredAt MonthDate `yaml:"acquired_at" json:"acquired_at"` // month of acquisition
}

// Gain returns the unrealized gain (may be negative).
func (l Lot) Gain() Money { return l.Amount.Sub(l.CostBasis) }

// Account is one typed holding. YearContributions accumulates the player's
// own contributions within the current calendar year and resets at the
// year boundary; it must never exceed the market's annual cap for the
// type. YearStateMatch accumulates state-match credits, which have their
// own annual ceiling and do not count against the player's cap.
type Account struct {
	Type              AccountType  `yaml:"type" json:"type"`
	Class             AccountClass `yaml:"class" json:"class"`
	Balance           Money        `yaml:"balance" json:"balance"`
	YearContributions Money        `yaml:"year_contributions" json:"year_contributions"`
	YearStateMatch    Money        `yaml:"year_state_match" json:"year_state_match"`
	Lots              []Lot        `yaml:"lots,omitempty" json:"lots,omitempty"`
}

// Clone deep-copies the account.
func (a *Account) Clone() *Account {
	dup := *a
	dup.Lots = make([]Lot, len(a.Lots))
	copy(dup.Lots, a.Lots)
	return &dup
}

// LotTotal sums the current value of all lots.
func (a *Account) LotTotal() Money {
	total := MoneyZero
	for _, l := range a.Lots {
		total = total.Add(l.Amount)
	}
	return total
}
