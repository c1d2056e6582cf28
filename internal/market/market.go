// Package market implements per-jurisdiction financial rule sets behind a
// single Provider contract: income tax brackets, social and health
// insurance, tax-advantaged account catalogues with annual caps and state
// matches, and capital-gains holding-period rules. One implementation per
// jurisdiction, no hierarchy. A profile is selected once per game and is
// immutable afterwards.
package market

import (
	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
)

// AccountSpec describes one account type the market offers.
type AccountSpec struct {
	Type  domain.AccountType
	Name  string
	Class domain.AccountClass

	// Capped marks accounts with an annual contribution ceiling.
	Capped    bool
	AnnualCap domain.Money

	// State match: credit of MatchRate per contributed unit, up to
	// MatchCapAnnual per calendar year. Zero rate means no match.
	MatchRate      decimal.Decimal
	MatchCapAnnual domain.Money

	// TaxDeductible marks contributions that reduce the tax base.
	TaxDeductible bool
}

// HasMatch reports whether the account carries a state-match formula.
func (s AccountSpec) HasMatch() bool { return s.MatchRate.IsPositive() }

// Provider exposes one jurisdiction's rule set. All functions are pure
// with respect to the provider; rule parameters never change after
// construction (a rule revision is a new provider version).
type Provider interface {
	ID() string
	Name() string
	Currency() string

	// IncomeTax computes the income tax owed on one month's gross income
	// at the given date. Negative income is a validation error. The
	// result is rounded down to the minor unit.
	IncomeTax(gross domain.Money, date domain.MonthDate) (domain.Money, error)

	// SocialInsurance computes the employee social contribution.
	SocialInsurance(gross domain.Money) (domain.Money, error)

	// HealthInsurance computes the health contribution. Markets with a
	// mandatory minimum charge it whenever the player has no active
	// income, even when gross is zero; this is never skipped.
	HealthInsurance(gross domain.Money, status domain.EmploymentStatus) (domain.Money, error)

	// Accounts lists every account type this market offers.
	Accounts() []AccountSpec

	// Account resolves one account type. Unknown types are a
	// ConfigurationError: the rule set does not know them.
	Account(t domain.AccountType) (AccountSpec, error)

	// CapitalGainsTax computes the tax owed on disposing one lot at the
	// given date. Holding-period exemptions compare whole months held
	// against the market's exemption period; exactly at the threshold is
	// exempt.
	CapitalGainsTax(lot domain.Lot, accountType domain.AccountType, disposal domain.MonthDate) (domain.Money, error)

	// EssentialFloor is the minimum monthly essential budget.
	EssentialFloor() domain.Money

	// HousingCatalogue lists the market's rentable housing options, for
	// scenario building and the CLI listing.
	HousingCatalogue() []domain.Housing

	// JobCatalogue lists the market's job board. Offers gate on
	// accumulated work experience; QualifiedJobs filters them.
	JobCatalogue() []domain.JobOffer

	// Moving-cost formula parameters: deposit as months of rent plus a
	// flat fee.
	MovingDepositMonths() int64
	MovingFee() domain.Money

	RetirementAge() int
}

// QualifiedJobs filters a catalogue down to the offers open to a player
// with the given months of work experience.
func QualifiedJobs(catalogue []domain.JobOffer, experienceMonths int) []domain.JobOffer {
	out := make([]domain.JobOffer, 0, len(catalogue))
	for _, offer := range catalogue {
		if offer.QualifiesWith(experienceMonths) {
			out = append(out, offer)
		}
	}
	return out
}

// TaxBracket is one marginal income-tax bracket. Brackets are contiguous:
// each bracket's Max equals the next bracket's Min, the income portion in
// a bracket is min(income, Max) - Min, and income exactly at a boundary
// therefore falls entirely into the lower bracket. The last bracket's Max
// is ignored (unbounded).
type TaxBracket struct {
	Min  domain.Money
	Max  domain.Money
	Rate decimal.Decimal
}

// taxFromBrackets applies marginal brackets to a taxable amount,
// unrounded. Callers round per their market's rule.
func taxFromBrackets(taxable domain.Money, brackets []TaxBracket) domain.Money {
	total := domain.MoneyZero
	for i, bracket := range brackets {
		if taxable.Cmp(bracket.Min) <= 0 {
			break
		}
		upper := taxable
		if i < len(brackets)-1 {
			upper = domain.MinMoney(taxable, bracket.Max)
		}
		portion := upper.Sub(bracket.Min)
		if portion.IsPositive() {
			total = total.Add(portion.MulRate(bracket.Rate))
		}
	}
	return total
}

func validateGross(gross domain.Money) error {
	if gross.IsNegative() {
		return &domain.ValidationError{Field: "gross_income", Reason: "must not be negative"}
	}
	return nil
}
