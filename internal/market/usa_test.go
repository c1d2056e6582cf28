package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowball-sim/snowball/internal/domain"
)

func TestUSAIncomeTaxWithStandardDeduction(t *testing.T) {
	m := NewUSAMarket()
	date := domain.MonthDate{Year: 2025, Month: 1}

	// 5,000 gross, 1,250 deduction: 993.75 at 10% plus 2,756.25 at 12%.
	tax, err := m.IncomeTax(domain.NewMoney(5000), date)
	require.NoError(t, err)
	assert.True(t, tax.Equal(domain.MustMoney("430.12")), "got %s", tax)

	// Entirely inside the deduction.
	tax, err = m.IncomeTax(domain.NewMoney(1000), date)
	require.NoError(t, err)
	assert.True(t, tax.IsZero())
}

func TestUSASocialSecurityWageBase(t *testing.T) {
	m := NewUSAMarket()

	// Below the base: 6.2% + 1.45% of the full amount.
	si, err := m.SocialInsurance(domain.NewMoney(5000))
	require.NoError(t, err)
	assert.True(t, si.Equal(domain.MustMoney("382.50")), "got %s", si)

	// Above the base: Social Security caps at 14,675/month, Medicare does not.
	si, err = m.SocialInsurance(domain.NewMoney(20000))
	require.NoError(t, err)
	assert.True(t, si.Equal(domain.MustMoney("1199.85")), "got %s", si)
}

func TestUSAHealthPremiums(t *testing.T) {
	m := NewUSAMarket()

	employed, err := m.HealthInsurance(domain.NewMoney(5000), domain.StatusEmployed)
	require.NoError(t, err)
	assert.True(t, employed.Equal(domain.NewMoney(200)))

	uninsured, err := m.HealthInsurance(domain.MoneyZero, domain.StatusUnemployed)
	require.NoError(t, err)
	assert.True(t, uninsured.Equal(domain.NewMoney(450)))
}

func TestUSALongTermVersusShortTermGains(t *testing.T) {
	m := NewUSAMarket()
	lot := domain.Lot{
		Amount:     domain.NewMoney(11000),
		CostBasis:  domain.NewMoney(10000),
		AcquiredAt: domain.MonthDate{Year: 2025, Month: 1},
	}

	short, err := m.CapitalGainsTax(lot, AccountBrokerageUS, domain.MonthDate{Year: 2025, Month: 12})
	require.NoError(t, err)
	assert.True(t, short.Equal(domain.NewMoney(240)), "11-month holding pays the short-term rate, got %s", short)

	long, err := m.CapitalGainsTax(lot, AccountBrokerageUS, domain.MonthDate{Year: 2026, Month: 1})
	require.NoError(t, err)
	assert.True(t, long.Equal(domain.NewMoney(150)), "12-month holding pays the long-term rate, got %s", long)
}

func TestUSAAccountCatalogue(t *testing.T) {
	m := NewUSAMarket()

	k401, err := m.Account(Account401k)
	require.NoError(t, err)
	assert.True(t, k401.Capped)
	assert.True(t, k401.AnnualCap.Equal(domain.NewMoney(23500)))
	assert.True(t, k401.HasMatch())
	assert.True(t, k401.MatchCapAnnual.Equal(domain.NewMoney(5000)))

	roth, err := m.Account(AccountRothIRA)
	require.NoError(t, err)
	assert.True(t, roth.AnnualCap.Equal(domain.NewMoney(7000)))
	assert.False(t, roth.HasMatch())
	assert.False(t, roth.TaxDeductible)
}
