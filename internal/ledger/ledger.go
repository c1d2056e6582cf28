// Package ledger tracks account balances, annual contribution counters
// and acquisition lots, and enforces the active market's caps and
// holding-period rules.
package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/market"
)

// Ledger operates directly on one snapshot's account map. The settlement
// engine hands it the working copy of the month, so a failed month never
// touches the committed snapshot.
type Ledger struct {
	provider market.Provider
	accounts map[domain.AccountType]*domain.Account
}

// New wraps the given account map with the active market's rules.
func New(provider market.Provider, accounts map[domain.AccountType]*domain.Account) *Ledger {
	return &Ledger{provider: provider, accounts: accounts}
}

// open returns the account for a type, creating it if the market offers
// the type. An unrecognized type is a configuration error.
func (l *Ledger) open(t domain.AccountType) (*domain.Account, market.AccountSpec, error) {
	spec, err := l.provider.Account(t)
	if err != nil {
		return nil, market.AccountSpec{}, err
	}
	acct, ok := l.accounts[t]
	if !ok {
		acct = &domain.Account{Type: t, Class: spec.Class}
		l.accounts[t] = acct
	}
	return acct, spec, nil
}

// RemainingCap returns the unused annual contribution headroom. The
// second result is false for uncapped accounts. Read-only: an account
// that does not exist yet has its full cap remaining.
func (l *Ledger) RemainingCap(t domain.AccountType) (domain.Money, bool, error) {
	spec, err := l.provider.Account(t)
	if err != nil {
		return domain.MoneyZero, false, err
	}
	if !spec.Capped {
		return domain.MoneyZero, false, nil
	}
	used := domain.MoneyZero
	if acct, ok := l.accounts[t]; ok {
		used = acct.YearContributions
	}
	return spec.AnnualCap.Sub(used), true, nil
}

// CheckContribution dry-runs a contribution without mutating anything.
// Used during the Planning phase.
func (l *Ledger) CheckContribution(t domain.AccountType, amount domain.Money) error {
	if !amount.IsPositive() {
		return &domain.ValidationError{Field: "contribution", Reason: "amount must be positive"}
	}
	remaining, capped, err := l.RemainingCap(t)
	if err != nil {
		return err
	}
	if capped && amount.GreaterThan(remaining) {
		return &domain.CapExceededError{Account: t, Requested: amount, Remaining: remaining}
	}
	return nil
}

// Contribute credits the player's own money to an account. A contribution
// above the remaining annual cap is rejected in full with a typed
// CapExceededError reporting the remaining headroom; the balance is
// unaffected by the rejected amount.
func (l *Ledger) Contribute(t domain.AccountType, amount domain.Money, date domain.MonthDate) (domain.ContributionOutcome, error) {
	if err := l.CheckContribution(t, amount); err != nil {
		return domain.ContributionOutcome{}, err
	}
	acct, spec, err := l.open(t)
	if err != nil {
		return domain.ContributionOutcome{}, err
	}

	acct.Balance = acct.Balance.Add(amount)
	acct.YearContributions = acct.YearContributions.Add(amount)
	acct.Lots = append(acct.Lots, domain.Lot{Amount: amount, CostBasis: amount, AcquiredAt: date})

	if spec.Capped && acct.YearContributions.GreaterThan(spec.AnnualCap) {
		return domain.ContributionOutcome{}, &domain.InvariantViolation{
			Invariant: "annual-cap",
			Detail: fmt.Sprintf("account %s year contributions %s exceed cap %s after validation",
				t, acct.YearContributions, spec.AnnualCap),
		}
	}

	remaining := domain.MoneyZero
	if spec.Capped {
		remaining = spec.AnnualCap.Sub(acct.YearContributions)
	}
	return domain.ContributionOutcome{
		Account:      t,
		Requested:    amount,
		Applied:      amount,
		RemainingCap: remaining,
	}, nil
}

// ApplyStateMatch computes and credits the state match earned by a
// contribution, per the market's formula. The match has its own annual
// ceiling and is applied independently of whether the player's own
// contribution was capped.
func (l *Ledger) ApplyStateMatch(t domain.AccountType, contributed domain.Money, date domain.MonthDate) (domain.Money, error) {
	acct, spec, err := l.open(t)
	if err != nil {
		return domain.MoneyZero, err
	}
	if !spec.HasMatch() || !contributed.IsPositive() {
		return domain.MoneyZero, nil
	}
	match := contributed.MulRate(spec.MatchRate).RoundDown(2)
	headroom := spec.MatchCapAnnual.Sub(acct.YearStateMatch)
	if !headroom.IsPositive() {
		return domain.MoneyZero, nil
	}
	match = domain.MinMoney(match, headroom)
	acct.Balance = acct.Balance.Add(match)
	acct.YearStateMatch = acct.YearStateMatch.Add(match)
	acct.Lots = append(acct.Lots, domain.Lot{Amount: match, CostBasis: match, AcquiredAt: date})
	return match, nil
}

// ApplyReturn scales every lot in taxable-class accounts by a market
// rate (e.g. 0.03 for +3%), leaving cost bases fixed. Used by
// market-move interrupt events.
func (l *Ledger) ApplyReturn(rate decimal.Decimal) {
	for _, acct := range l.accounts {
		if acct.Class != domain.ClassTaxable {
			continue
		}
		total := domain.MoneyZero
		for i := range acct.Lots {
			grown := acct.Lots[i].Amount.Add(acct.Lots[i].Amount.MulRate(rate)).Round(2)
			acct.Lots[i].Amount = grown
			total = total.Add(grown)
		}
		acct.Balance = total
	}
}

// Dispose sells amount out of a lot-tracked account, consuming lots
// oldest first (FIFO). Capital-gains tax is evaluated lot by lot through
// the market rule; lots with different acquisition dates are never
// averaged. A partial lot is split pro rata.
func (l *Ledger) Dispose(t domain.AccountType, amount domain.Money, date domain.MonthDate) (domain.DisposalOutcome, error) {
	if !amount.IsPositive() {
		return domain.DisposalOutcome{}, &domain.ValidationError{Field: "disposal", Reason: "amount must be positive"}
	}
	acct, _, err := l.open(t)
	if err != nil {
		return domain.DisposalOutcome{}, err
	}
	if amount.GreaterThan(acct.Balance) {
		return domain.DisposalOutcome{}, &domain.ValidationError{
			Field:  "disposal",
			Reason: fmt.Sprintf("amount %s exceeds balance %s", amount, acct.Balance),
		}
	}

	sort.SliceStable(acct.Lots, func(i, j int) bool {
		return acct.Lots[i].AcquiredAt.Before(acct.Lots[j].AcquiredAt)
	})

	outcome := domain.DisposalOutcome{Account: t}
	remaining := amount
	kept := acct.Lots[:0]
	for _, lot := range acct.Lots {
		if !remaining.IsPositive() {
			kept = append(kept, lot)
			continue
		}
		if lot.Amount.GreaterThan(remaining) {
			// Partial disposal: split the lot pro rata, keeping the
			// acquisition date on both halves.
			fraction := remaining.Ratio(lot.Amount)
			sold := domain.Lot{
				Amount:     remaining,
				CostBasis:  lot.CostBasis.MulRate(fraction).Round(2),
				AcquiredAt: lot.AcquiredAt,
			}
			tax, err := l.provider.CapitalGainsTax(sold, t, date)
			if err != nil {
				return domain.DisposalOutcome{}, err
			}
			lot.Amount = lot.Amount.Sub(sold.Amount)
			lot.CostBasis = lot.CostBasis.Sub(sold.CostBasis)
			kept = append(kept, lot)
			outcome.GrossProceeds = outcome.GrossProceeds.Add(sold.Amount)
			outcome.Tax = outcome.Tax.Add(tax)
			outcome.LotsConsumed++
			remaining = domain.MoneyZero
			continue
		}
		tax, err := l.provider.CapitalGainsTax(lot, t, date)
		if err != nil {
			return domain.DisposalOutcome{}, err
		}
		outcome.GrossProceeds = outcome.GrossProceeds.Add(lot.Amount)
		outcome.Tax = outcome.Tax.Add(tax)
		outcome.LotsConsumed++
		remaining = remaining.Sub(lot.Amount)
	}
	acct.Lots = kept
	acct.Balance = acct.Balance.Sub(outcome.GrossProceeds)
	outcome.NetProceeds = outcome.GrossProceeds.Sub(outcome.Tax)

	if acct.Balance.IsNegative() {
		return domain.DisposalOutcome{}, &domain.InvariantViolation{
			Invariant: "balance",
			Detail:    fmt.Sprintf("account %s balance went negative after disposal", t),
		}
	}
	return outcome, nil
}

// ResetYearCounters zeroes every account's annual contribution and match
// counters. Called exactly at the calendar-year boundary.
func (l *Ledger) ResetYearCounters() {
	for _, acct := range l.accounts {
		acct.YearContributions = domain.MoneyZero
		acct.YearStateMatch = domain.MoneyZero
	}
}

// CheckInvariants verifies the ledger-level invariants after a month's
// mutations: counters within caps and never negative, lot totals matching
// balances on lot-tracked accounts.
func (l *Ledger) CheckInvariants() error {
	for t, acct := range l.accounts {
		if acct.YearContributions.IsNegative() {
			return &domain.InvariantViolation{
				Invariant: "annual-counter",
				Detail:    fmt.Sprintf("account %s has negative year contributions %s", t, acct.YearContributions),
			}
		}
		spec, err := l.provider.Account(t)
		if err != nil {
			return err
		}
		if spec.Capped && acct.YearContributions.GreaterThan(spec.AnnualCap) {
			return &domain.InvariantViolation{
				Invariant: "annual-cap",
				Detail:    fmt.Sprintf("account %s contributions %s exceed cap %s", t, acct.YearContributions, spec.AnnualCap),
			}
		}
		if len(acct.Lots) > 0 && !acct.LotTotal().Equal(acct.Balance) {
			return &domain.InvariantViolation{
				Invariant: "lot-total",
				Detail:    fmt.Sprintf("account %s lots sum to %s but balance is %s", t, acct.LotTotal(), acct.Balance),
			}
		}
	}
	return nil
}
