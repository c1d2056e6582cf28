package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowball-sim/snowball/internal/domain"
)

func TestUKIncomeTaxPersonalAllowance(t *testing.T) {
	m := NewUKMarket()
	date := domain.MonthDate{Year: 2024, Month: 7}

	// Inside the allowance.
	tax, err := m.IncomeTax(domain.NewMoney(1000), date)
	require.NoError(t, err)
	assert.True(t, tax.IsZero())

	// 3,000 gross: 1,952.50 taxable at the basic rate.
	tax, err = m.IncomeTax(domain.NewMoney(3000), date)
	require.NoError(t, err)
	assert.True(t, tax.Equal(domain.MustMoney("390.50")), "got %s", tax)
}

func TestUKNationalInsuranceBands(t *testing.T) {
	m := NewUKMarket()

	ni, err := m.SocialInsurance(domain.NewMoney(1000))
	require.NoError(t, err)
	assert.True(t, ni.IsZero(), "below the primary threshold owes nothing")

	ni, err = m.SocialInsurance(domain.NewMoney(3000))
	require.NoError(t, err)
	assert.True(t, ni.Equal(domain.MustMoney("156.16")), "got %s", ni)

	// 8% between 1,048 and 4,189, then 2% above.
	ni, err = m.SocialInsurance(domain.NewMoney(5000))
	require.NoError(t, err)
	assert.True(t, ni.Equal(domain.MustMoney("267.50")), "got %s", ni)
}

func TestUKHealthChargeIsZero(t *testing.T) {
	m := NewUKMarket()
	for _, status := range []domain.EmploymentStatus{domain.StatusEmployed, domain.StatusUnemployed} {
		h, err := m.HealthInsurance(domain.MoneyZero, status)
		require.NoError(t, err)
		assert.True(t, h.IsZero())
	}
}

func TestUKGainsHaveNoHoldingExemption(t *testing.T) {
	m := NewUKMarket()
	lot := domain.Lot{
		Amount:     domain.NewMoney(6000),
		CostBasis:  domain.NewMoney(5000),
		AcquiredAt: domain.MonthDate{Year: 2019, Month: 1},
	}

	tax, err := m.CapitalGainsTax(lot, AccountBrokerageUK, domain.MonthDate{Year: 2024, Month: 1})
	require.NoError(t, err)
	assert.True(t, tax.Equal(domain.NewMoney(200)), "five-year holding still pays 20%%, got %s", tax)

	// ISA gains are sheltered by account class.
	tax, err = m.CapitalGainsTax(lot, AccountISA, domain.MonthDate{Year: 2024, Month: 1})
	require.NoError(t, err)
	assert.True(t, tax.IsZero())
}

func TestUKLISABonus(t *testing.T) {
	m := NewUKMarket()
	lisa, err := m.Account(AccountLISA)
	require.NoError(t, err)
	assert.True(t, lisa.HasMatch())
	assert.True(t, lisa.AnnualCap.Equal(domain.NewMoney(4000)))
	assert.True(t, lisa.MatchCapAnnual.Equal(domain.NewMoney(1000)))
}
