package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
)

// USA MARKET RULE ASSUMPTIONS (2025 rule set, single filer):
//
// 1. Federal income tax: 2025 single-filer brackets evaluated monthly
//    (annual boundaries divided by 12), standard deduction $15,000/year
//    applied as $1,250/month. No state tax is modeled.
//
// 2. Social insurance: Social Security 6.2% up to the monthly wage base
//    ($176,100 / 12 = $14,675) plus Medicare 1.45% uncapped.
//
// 3. Health insurance: $200/month employee premium share while employed;
//    $450/month marketplace minimum whenever there is no active income.
//
// 4. Capital gains: no exemption. Lots held >= 12 whole months pay the
//    long-term 15% rate, shorter holdings pay 24% (ordinary bracket
//    stand-in). Evaluated lot by lot.
//
// 5. The 401(k) employer match is modeled through the state-match
//    formula: 50 cents per dollar up to $5,000/year.

const usaID = "usa"

// USA account type identifiers.
const (
	Account401k        domain.AccountType = "401k"
	AccountRothIRA     domain.AccountType = "roth_ira"
	AccountHSA         domain.AccountType = "hsa"
	AccountBrokerageUS domain.AccountType = "brokerage"
	AccountEmergencyUS domain.AccountType = "emergency"
)

// USAMarket implements the 2025 USA rule set.
type USAMarket struct {
	brackets          []TaxBracket
	standardDeduction domain.Money
	ssRate            decimal.Decimal
	ssWageBaseMonthly domain.Money
	medicareRate      decimal.Decimal
	healthEmployed    domain.Money
	healthMinimum     domain.Money
	longTermMonths    int
	longTermRate      decimal.Decimal
	shortTermRate     decimal.Decimal
	essentialFloor    domain.Money
	movingDepositMo   int64
	movingFee         domain.Money
	accounts          []AccountSpec
}

// NewUSAMarket creates the USA provider.
func NewUSAMarket() *USAMarket {
	monthly := func(annual int64) domain.Money {
		return domain.NewMoney(annual).DivInt(12)
	}
	return &USAMarket{
		brackets: []TaxBracket{
			{Min: domain.MoneyZero, Max: monthly(11925), Rate: decimal.NewFromFloat(0.10)},
			{Min: monthly(11925), Max: monthly(48475), Rate: decimal.NewFromFloat(0.12)},
			{Min: monthly(48475), Max: monthly(103350), Rate: decimal.NewFromFloat(0.22)},
			{Min: monthly(103350), Max: monthly(197300), Rate: decimal.NewFromFloat(0.24)},
			{Min: monthly(197300), Max: monthly(250525), Rate: decimal.NewFromFloat(0.32)},
			{Min: monthly(250525), Max: monthly(626350), Rate: decimal.NewFromFloat(0.35)},
			{Min: monthly(626350), Max: domain.MoneyZero, Rate: decimal.NewFromFloat(0.37)},
		},
		standardDeduction: monthly(15000),
		ssRate:            decimal.NewFromFloat(0.062),
		ssWageBaseMonthly: monthly(176100),
		medicareRate:      decimal.NewFromFloat(0.0145),
		healthEmployed:    domain.NewMoney(200),
		healthMinimum:     domain.NewMoney(450),
		longTermMonths:    12,
		longTermRate:      decimal.NewFromFloat(0.15),
		shortTermRate:     decimal.NewFromFloat(0.24),
		essentialFloor:    domain.NewMoney(400),
		movingDepositMo:   1,
		movingFee:         domain.NewMoney(500),
		accounts: []AccountSpec{
			{
				Type:           Account401k,
				Name:           "401(k)",
				Class:          domain.ClassRetirement,
				Capped:         true,
				AnnualCap:      domain.NewMoney(23500),
				MatchRate:      decimal.NewFromFloat(0.50),
				MatchCapAnnual: domain.NewMoney(5000),
				TaxDeductible:  true,
			},
			{
				Type:      AccountRothIRA,
				Name:      "Roth IRA",
				Class:     domain.ClassRetirement,
				Capped:    true,
				AnnualCap: domain.NewMoney(7000),
			},
			{
				Type:          AccountHSA,
				Name:          "HSA",
				Class:         domain.ClassSavings,
				Capped:        true,
				AnnualCap:     domain.NewMoney(4300),
				TaxDeductible: true,
			},
			{
				Type:  AccountBrokerageUS,
				Name:  "Brokerage",
				Class: domain.ClassTaxable,
			},
			{
				Type:  AccountEmergencyUS,
				Name:  "Emergency fund",
				Class: domain.ClassEmergency,
			},
		},
	}
}

func (m *USAMarket) ID() string       { return usaID }
func (m *USAMarket) Name() string     { return "United States" }
func (m *USAMarket) Currency() string { return "USD" }

// IncomeTax applies the monthly standard deduction, then the marginal
// brackets. Rounds down to the cent.
func (m *USAMarket) IncomeTax(gross domain.Money, _ domain.MonthDate) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	taxable := gross.Sub(m.standardDeduction)
	if !taxable.IsPositive() {
		return domain.MoneyZero, nil
	}
	return taxFromBrackets(taxable, m.brackets).RoundDown(2), nil
}

// SocialInsurance is Social Security up to the wage base plus Medicare.
func (m *USAMarket) SocialInsurance(gross domain.Money) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	ssBase := domain.MinMoney(gross, m.ssWageBaseMonthly)
	ss := ssBase.MulRate(m.ssRate)
	medicare := gross.MulRate(m.medicareRate)
	return ss.Add(medicare).RoundDown(2), nil
}

func (m *USAMarket) HealthInsurance(gross domain.Money, status domain.EmploymentStatus) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	if status == domain.StatusUnemployed || gross.IsZero() {
		return m.healthMinimum, nil
	}
	return m.healthEmployed, nil
}

func (m *USAMarket) Accounts() []AccountSpec { return m.accounts }

func (m *USAMarket) Account(t domain.AccountType) (AccountSpec, error) {
	for _, spec := range m.accounts {
		if spec.Type == t {
			return spec, nil
		}
	}
	return AccountSpec{}, &domain.ConfigurationError{
		Rule:   usaID,
		Detail: fmt.Sprintf("unknown account type %q", t),
	}
}

// CapitalGainsTax has no exemption in this market: long-term lots
// (>= 12 whole months, boundary inclusive) pay 15%, short-term 24%.
func (m *USAMarket) CapitalGainsTax(lot domain.Lot, accountType domain.AccountType, disposal domain.MonthDate) (domain.Money, error) {
	spec, err := m.Account(accountType)
	if err != nil {
		return domain.MoneyZero, err
	}
	if spec.Class != domain.ClassTaxable {
		return domain.MoneyZero, nil
	}
	gain := lot.Gain()
	if !gain.IsPositive() {
		return domain.MoneyZero, nil
	}
	rate := m.shortTermRate
	if disposal.MonthsSince(lot.AcquiredAt) >= m.longTermMonths {
		rate = m.longTermRate
	}
	return gain.MulRate(rate).RoundDown(2), nil
}

func (m *USAMarket) EssentialFloor() domain.Money { return m.essentialFloor }

func (m *USAMarket) HousingCatalogue() []domain.Housing {
	return []domain.Housing{
		{ID: "room-shared", Name: "Shared room", MonthlyRent: domain.NewMoney(800), MonthlyUtilities: domain.NewMoney(150)},
		{ID: "apt-studio", Name: "Studio apartment", MonthlyRent: domain.NewMoney(1400), MonthlyUtilities: domain.NewMoney(200)},
		{ID: "apt-1br", Name: "One-bedroom apartment", MonthlyRent: domain.NewMoney(1900), MonthlyUtilities: domain.NewMoney(250)},
	}
}

func (m *USAMarket) JobCatalogue() []domain.JobOffer {
	return []domain.JobOffer{
		domain.NewJobOffer("us-retail-entry", "Retail Associate", "retail", "Corner Market", domain.LevelEntry, domain.NewMoney(2400)),
		domain.NewJobOffer("us-it-entry", "IT Support Specialist", "technology", "HelpDesk Inc", domain.LevelEntry, domain.NewMoney(3400)),
		domain.NewJobOffer("us-dev-junior", "Junior Software Developer", "technology", "StartupCo", domain.LevelJunior, domain.NewMoney(5500)),
		domain.NewJobOffer("us-dev-mid", "Software Engineer", "technology", "BigTech Corp", domain.LevelMid, domain.NewMoney(8500)),
		domain.NewJobOffer("us-nurse-mid", "Registered Nurse", "healthcare", "General Hospital", domain.LevelMid, domain.NewMoney(6500)),
		domain.NewJobOffer("us-dev-senior", "Senior Software Engineer", "technology", "BigTech Corp", domain.LevelSenior, domain.NewMoney(12000)),
		domain.NewJobOffer("us-mgr-lead", "Engineering Manager", "technology", "BigTech Corp", domain.LevelLead, domain.NewMoney(15000)),
	}
}

func (m *USAMarket) MovingDepositMonths() int64 { return m.movingDepositMo }
func (m *USAMarket) MovingFee() domain.Money    { return m.movingFee }
func (m *USAMarket) RetirementAge() int         { return 67 }
