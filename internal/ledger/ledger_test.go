package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/market"
)

func newCzechLedger(t *testing.T) (*Ledger, map[domain.AccountType]*domain.Account) {
	t.Helper()
	provider, err := market.Select("czech")
	require.NoError(t, err)
	accounts := make(map[domain.AccountType]*domain.Account)
	return New(provider, accounts), accounts
}

func TestContributionAboveCapIsRejectedInFull(t *testing.T) {
	l, accounts := newCzechLedger(t)
	date := domain.MonthDate{Year: 2024, Month: 1}

	outcome, err := l.Contribute(market.AccountThirdPillar, domain.NewMoney(20000), date)
	require.NoError(t, err)
	assert.True(t, outcome.Applied.Equal(domain.NewMoney(20000)))
	assert.True(t, outcome.RemainingCap.Equal(domain.NewMoney(4000)))

	// 5,000 over a 4,000 headroom: rejected whole, not partially applied.
	_, err = l.Contribute(market.AccountThirdPillar, domain.NewMoney(5000), date)
	require.Error(t, err)
	var capErr *domain.CapExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, market.AccountThirdPillar, capErr.Account)
	assert.True(t, capErr.Requested.Equal(domain.NewMoney(5000)))
	assert.True(t, capErr.Remaining.Equal(domain.NewMoney(4000)))

	acct := accounts[market.AccountThirdPillar]
	assert.True(t, acct.Balance.Equal(domain.NewMoney(20000)), "rejected contribution must not move the balance")
	assert.True(t, acct.YearContributions.Equal(domain.NewMoney(20000)))

	// Exactly the headroom still fits.
	outcome, err = l.Contribute(market.AccountThirdPillar, domain.NewMoney(4000), date)
	require.NoError(t, err)
	assert.True(t, outcome.RemainingCap.IsZero())
}

func TestCheckContributionIsReadOnly(t *testing.T) {
	l, accounts := newCzechLedger(t)

	err := l.CheckContribution(market.AccountThirdPillar, domain.NewMoney(10000))
	require.NoError(t, err)
	assert.Empty(t, accounts, "a dry-run must not open accounts")

	err = l.CheckContribution(market.AccountThirdPillar, domain.NewMoney(25000))
	var capErr *domain.CapExceededError
	require.True(t, errors.As(err, &capErr))
	assert.True(t, capErr.Remaining.Equal(domain.NewMoney(24000)))
	assert.Empty(t, accounts)
}

func TestContributionToUnknownAccount(t *testing.T) {
	l, _ := newCzechLedger(t)
	_, err := l.Contribute("401k", domain.NewMoney(1000), domain.MonthDate{Year: 2024, Month: 1})
	require.Error(t, err)
	assert.True(t, domain.IsConfiguration(err))
}

func TestStateMatchFormulaAndAnnualCeiling(t *testing.T) {
	l, accounts := newCzechLedger(t)
	date := domain.MonthDate{Year: 2024, Month: 1}

	_, err := l.Contribute(market.AccountThirdPillar, domain.NewMoney(1000), date)
	require.NoError(t, err)
	match, err := l.ApplyStateMatch(market.AccountThirdPillar, domain.NewMoney(1000), date)
	require.NoError(t, err)
	assert.True(t, match.Equal(domain.NewMoney(200)), "20%% of 1,000, got %s", match)

	acct := accounts[market.AccountThirdPillar]
	assert.True(t, acct.Balance.Equal(domain.NewMoney(1200)))
	assert.True(t, acct.YearStateMatch.Equal(domain.NewMoney(200)))

	// A full-cap contribution would earn 4,600 more; only 3,880 headroom
	// is left under the 4,080 annual match ceiling.
	_, err = l.Contribute(market.AccountThirdPillar, domain.NewMoney(23000), date)
	require.NoError(t, err)
	match, err = l.ApplyStateMatch(market.AccountThirdPillar, domain.NewMoney(23000), date)
	require.NoError(t, err)
	assert.True(t, match.Equal(domain.NewMoney(3880)), "match is clipped to the annual ceiling, got %s", match)
	assert.True(t, acct.YearStateMatch.Equal(domain.NewMoney(4080)))

	// Ceiling reached: further contributions earn nothing.
	match, err = l.ApplyStateMatch(market.AccountThirdPillar, domain.NewMoney(500), date)
	require.NoError(t, err)
	assert.True(t, match.IsZero())
}

func TestNoMatchOnUnmatchedAccounts(t *testing.T) {
	l, _ := newCzechLedger(t)
	date := domain.MonthDate{Year: 2024, Month: 1}
	_, err := l.Contribute(market.AccountDIP, domain.NewMoney(1000), date)
	require.NoError(t, err)
	match, err := l.ApplyStateMatch(market.AccountDIP, domain.NewMoney(1000), date)
	require.NoError(t, err)
	assert.True(t, match.IsZero())
}

func TestDisposalConsumesLotsOldestFirst(t *testing.T) {
	l, accounts := newCzechLedger(t)
	accounts[market.AccountBrokerageCZ] = &domain.Account{
		Type:    market.AccountBrokerageCZ,
		Class:   domain.ClassTaxable,
		Balance: domain.NewMoney(18000),
		Lots: []domain.Lot{
			{Amount: domain.NewMoney(6000), CostBasis: domain.NewMoney(5000), AcquiredAt: domain.MonthDate{Year: 2024, Month: 6}},
			{Amount: domain.NewMoney(12000), CostBasis: domain.NewMoney(10000), AcquiredAt: domain.MonthDate{Year: 2020, Month: 1}},
		},
	}

	outcome, err := l.Dispose(market.AccountBrokerageCZ, domain.NewMoney(15000), domain.MonthDate{Year: 2024, Month: 12})
	require.NoError(t, err)

	// The 2020 lot passes the time test; half the 2024 lot is sold with a
	// 500 gain taxed at 15%.
	assert.True(t, outcome.GrossProceeds.Equal(domain.NewMoney(15000)))
	assert.True(t, outcome.Tax.Equal(domain.NewMoney(75)), "got %s", outcome.Tax)
	assert.True(t, outcome.NetProceeds.Equal(domain.NewMoney(14925)))
	assert.Equal(t, 2, outcome.LotsConsumed)

	acct := accounts[market.AccountBrokerageCZ]
	assert.True(t, acct.Balance.Equal(domain.NewMoney(3000)))
	require.Len(t, acct.Lots, 1)
	assert.True(t, acct.Lots[0].Amount.Equal(domain.NewMoney(3000)))
	assert.True(t, acct.Lots[0].CostBasis.Equal(domain.NewMoney(2500)), "partial split keeps the basis pro rata")
	assert.Equal(t, domain.MonthDate{Year: 2024, Month: 6}, acct.Lots[0].AcquiredAt, "split keeps the acquisition date")
}

func TestDisposalOverdraw(t *testing.T) {
	l, accounts := newCzechLedger(t)
	accounts[market.AccountBrokerageCZ] = &domain.Account{
		Type:    market.AccountBrokerageCZ,
		Class:   domain.ClassTaxable,
		Balance: domain.NewMoney(1000),
		Lots: []domain.Lot{
			{Amount: domain.NewMoney(1000), CostBasis: domain.NewMoney(1000), AcquiredAt: domain.MonthDate{Year: 2024, Month: 1}},
		},
	}
	_, err := l.Dispose(market.AccountBrokerageCZ, domain.NewMoney(2000), domain.MonthDate{Year: 2024, Month: 6})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.True(t, accounts[market.AccountBrokerageCZ].Balance.Equal(domain.NewMoney(1000)))
}

func TestApplyReturnScalesTaxableLotsOnly(t *testing.T) {
	l, accounts := newCzechLedger(t)
	date := domain.MonthDate{Year: 2024, Month: 1}
	_, err := l.Contribute(market.AccountBrokerageCZ, domain.NewMoney(10000), date)
	require.NoError(t, err)
	_, err = l.Contribute(market.AccountThirdPillar, domain.NewMoney(10000), date)
	require.NoError(t, err)

	l.ApplyReturn(decimal.NewFromFloat(0.03))

	assert.True(t, accounts[market.AccountBrokerageCZ].Balance.Equal(domain.NewMoney(10300)))
	assert.True(t, accounts[market.AccountBrokerageCZ].Lots[0].CostBasis.Equal(domain.NewMoney(10000)),
		"cost basis stays fixed through market moves")
	assert.True(t, accounts[market.AccountThirdPillar].Balance.Equal(domain.NewMoney(10000)),
		"non-taxable accounts do not follow market moves")
	require.NoError(t, l.CheckInvariants())
}

func TestResetYearCounters(t *testing.T) {
	l, accounts := newCzechLedger(t)
	date := domain.MonthDate{Year: 2024, Month: 12}
	_, err := l.Contribute(market.AccountThirdPillar, domain.NewMoney(2000), date)
	require.NoError(t, err)
	_, err = l.ApplyStateMatch(market.AccountThirdPillar, domain.NewMoney(2000), date)
	require.NoError(t, err)

	l.ResetYearCounters()

	acct := accounts[market.AccountThirdPillar]
	assert.True(t, acct.YearContributions.IsZero())
	assert.True(t, acct.YearStateMatch.IsZero())
	assert.True(t, acct.Balance.Equal(domain.NewMoney(2400)), "balances survive the year boundary")

	// Full headroom is available again.
	remaining, capped, err := l.RemainingCap(market.AccountThirdPillar)
	require.NoError(t, err)
	assert.True(t, capped)
	assert.True(t, remaining.Equal(domain.NewMoney(24000)))
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	l, accounts := newCzechLedger(t)
	accounts[market.AccountThirdPillar] = &domain.Account{
		Type:              market.AccountThirdPillar,
		Class:             domain.ClassRetirement,
		Balance:           domain.NewMoney(30000),
		YearContributions: domain.NewMoney(30000),
	}
	err := l.CheckInvariants()
	require.Error(t, err)
	assert.True(t, domain.IsInvariant(err))

	accounts[market.AccountThirdPillar].YearContributions = domain.NewMoney(-1)
	err = l.CheckInvariants()
	require.Error(t, err)
	assert.True(t, domain.IsInvariant(err))
}
