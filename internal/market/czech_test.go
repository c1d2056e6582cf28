package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowball-sim/snowball/internal/domain"
)

func TestCzechPayrollAtTypicalSalary(t *testing.T) {
	m := NewCzechMarket()
	date := domain.MonthDate{Year: 2024, Month: 3}
	gross := domain.NewMoney(30000)

	tax, err := m.IncomeTax(gross, date)
	require.NoError(t, err)
	assert.True(t, tax.Equal(domain.NewMoney(4500)), "income tax on 30,000 should be 4,500, got %s", tax)

	social, err := m.SocialInsurance(gross)
	require.NoError(t, err)
	assert.True(t, social.Equal(domain.NewMoney(2130)), "social insurance should be 2,130, got %s", social)

	health, err := m.HealthInsurance(gross, domain.StatusEmployed)
	require.NoError(t, err)
	assert.True(t, health.Equal(domain.NewMoney(1350)), "health insurance should be 1,350, got %s", health)
}

func TestCzechBracketBoundaryBelongsToLowerBracket(t *testing.T) {
	m := NewCzechMarket()
	date := domain.MonthDate{Year: 2024, Month: 1}

	atBoundary, err := m.IncomeTax(domain.MustMoney("155644"), date)
	require.NoError(t, err)
	// 155,644 * 0.15, nothing at 23%.
	assert.True(t, atBoundary.Equal(domain.MustMoney("23346.6")),
		"boundary income should be taxed entirely at 15%%, got %s", atBoundary)

	oneOver, err := m.IncomeTax(domain.MustMoney("155645"), date)
	require.NoError(t, err)
	assert.True(t, oneOver.Equal(domain.MustMoney("23346.83")),
		"one koruna over the boundary should add 23 halers, got %s", oneOver)
}

func TestCzechIncomeTaxIsMonotonic(t *testing.T) {
	m := NewCzechMarket()
	date := domain.MonthDate{Year: 2024, Month: 6}
	prev := domain.MoneyZero
	for gross := int64(0); gross <= 400000; gross += 7919 {
		tax, err := m.IncomeTax(domain.NewMoney(gross), date)
		require.NoError(t, err)
		assert.True(t, tax.GreaterThanOrEqual(prev),
			"tax must not decrease as income grows (gross %d)", gross)
		prev = tax
	}
}

func TestCzechHealthMinimumWithoutIncome(t *testing.T) {
	m := NewCzechMarket()

	health, err := m.HealthInsurance(domain.MoneyZero, domain.StatusUnemployed)
	require.NoError(t, err)
	assert.True(t, health.Equal(domain.NewMoney(2552)),
		"no-income month must charge the statutory minimum, got %s", health)

	tax, err := m.IncomeTax(domain.MoneyZero, domain.MonthDate{Year: 2024, Month: 1})
	require.NoError(t, err)
	assert.True(t, tax.IsZero())

	social, err := m.SocialInsurance(domain.MoneyZero)
	require.NoError(t, err)
	assert.True(t, social.IsZero())
}

func TestCzechTimeTestBoundary(t *testing.T) {
	m := NewCzechMarket()
	lot := domain.Lot{
		Amount:     domain.NewMoney(150000),
		CostBasis:  domain.NewMoney(100000),
		AcquiredAt: domain.MonthDate{Year: 2024, Month: 1},
	}

	exempt, err := m.CapitalGainsTax(lot, AccountBrokerageCZ, domain.MonthDate{Year: 2027, Month: 1})
	require.NoError(t, err)
	assert.True(t, exempt.IsZero(), "lot held exactly 36 months is exempt, got %s", exempt)

	taxed, err := m.CapitalGainsTax(lot, AccountBrokerageCZ, domain.MonthDate{Year: 2026, Month: 12})
	require.NoError(t, err)
	assert.True(t, taxed.Equal(domain.NewMoney(7500)),
		"lot held 35 months owes 15%% of the 50,000 gain, got %s", taxed)
}

func TestCzechLossesAndShelteredAccountsOweNothing(t *testing.T) {
	m := NewCzechMarket()
	disposal := domain.MonthDate{Year: 2025, Month: 6}

	loss := domain.Lot{
		Amount:     domain.NewMoney(80000),
		CostBasis:  domain.NewMoney(100000),
		AcquiredAt: domain.MonthDate{Year: 2025, Month: 1},
	}
	tax, err := m.CapitalGainsTax(loss, AccountBrokerageCZ, disposal)
	require.NoError(t, err)
	assert.True(t, tax.IsZero(), "losses are not taxed")

	gain := domain.Lot{
		Amount:     domain.NewMoney(120000),
		CostBasis:  domain.NewMoney(100000),
		AcquiredAt: domain.MonthDate{Year: 2025, Month: 1},
	}
	tax, err = m.CapitalGainsTax(gain, AccountThirdPillar, disposal)
	require.NoError(t, err)
	assert.True(t, tax.IsZero(), "retirement accounts are outside capital-gains scope")
}

func TestCzechUnknownAccountType(t *testing.T) {
	m := NewCzechMarket()
	_, err := m.Account("ira")
	require.Error(t, err)
	assert.True(t, domain.IsConfiguration(err), "unknown account type is a configuration error")
}

func TestCzechNegativeIncomeRejected(t *testing.T) {
	m := NewCzechMarket()
	_, err := m.IncomeTax(domain.NewMoney(-1), domain.MonthDate{Year: 2024, Month: 1})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = m.SocialInsurance(domain.NewMoney(-1))
	assert.True(t, domain.IsValidation(err))

	_, err = m.HealthInsurance(domain.NewMoney(-1), domain.StatusEmployed)
	assert.True(t, domain.IsValidation(err))
}

func TestCzechMovingParameters(t *testing.T) {
	m := NewCzechMarket()
	assert.Equal(t, int64(2), m.MovingDepositMonths())
	assert.True(t, m.MovingFee().Equal(domain.NewMoney(1500)))
	assert.True(t, m.EssentialFloor().Equal(domain.NewMoney(3500)))
	assert.Equal(t, 65, m.RetirementAge())
}

func TestCzechAccountCatalogue(t *testing.T) {
	m := NewCzechMarket()

	pillar, err := m.Account(AccountThirdPillar)
	require.NoError(t, err)
	assert.True(t, pillar.Capped)
	assert.True(t, pillar.AnnualCap.Equal(domain.NewMoney(24000)))
	assert.True(t, pillar.HasMatch())
	assert.True(t, pillar.MatchCapAnnual.Equal(domain.NewMoney(4080)))
	assert.True(t, pillar.TaxDeductible)

	building, err := m.Account(AccountBuildingSavings)
	require.NoError(t, err)
	assert.True(t, building.AnnualCap.Equal(domain.NewMoney(20000)))
	assert.True(t, building.HasMatch())

	brokerage, err := m.Account(AccountBrokerageCZ)
	require.NoError(t, err)
	assert.False(t, brokerage.Capped)
	assert.False(t, brokerage.HasMatch())
	assert.Equal(t, domain.ClassTaxable, brokerage.Class)
}
