package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
)

// UK MARKET RULE ASSUMPTIONS (2024/25 rule set):
//
// 1. Income tax: personal allowance £12,570/year (£1,047.50/month), then
//    20% basic to £50,270, 40% higher to £125,140, 45% additional, with
//    annual boundaries evaluated monthly. The allowance taper above
//    £100,000 is not modeled.
//
// 2. Social insurance: Class 1 NI, 8% between the monthly primary
//    threshold (£1,048) and upper earnings limit (£4,189), 2% above.
//
// 3. Health insurance: NHS, no separate charge. The no-income fallback
//    minimum is therefore zero; the rule still runs every month.
//
// 4. Capital gains: no holding-period exemption, flat 20% per lot. ISA
//    and LISA gains are tax-free by account class.

const ukID = "uk"

// UK account type identifiers.
const (
	AccountISA         domain.AccountType = "isa"
	AccountLISA        domain.AccountType = "lisa"
	AccountSIPP        domain.AccountType = "sipp"
	AccountBrokerageUK domain.AccountType = "brokerage"
	AccountEmergencyUK domain.AccountType = "emergency"
)

// UKMarket implements the 2024/25 UK rule set.
type UKMarket struct {
	allowance       domain.Money
	brackets        []TaxBracket
	niBands         []TaxBracket
	gainsRate       decimal.Decimal
	essentialFloor  domain.Money
	movingDepositMo int64
	movingFee       domain.Money
	accounts        []AccountSpec
}

// NewUKMarket creates the UK provider.
func NewUKMarket() *UKMarket {
	monthly := func(annual int64) domain.Money {
		return domain.NewMoney(annual).DivInt(12)
	}
	// Bracket boundaries are expressed net of the personal allowance.
	basicTop := monthly(50270).Sub(monthly(12570))
	higherTop := monthly(125140).Sub(monthly(12570))
	return &UKMarket{
		allowance: monthly(12570),
		brackets: []TaxBracket{
			{Min: domain.MoneyZero, Max: basicTop, Rate: decimal.NewFromFloat(0.20)},
			{Min: basicTop, Max: higherTop, Rate: decimal.NewFromFloat(0.40)},
			{Min: higherTop, Max: domain.MoneyZero, Rate: decimal.NewFromFloat(0.45)},
		},
		niBands: []TaxBracket{
			{Min: domain.NewMoney(1048), Max: domain.NewMoney(4189), Rate: decimal.NewFromFloat(0.08)},
			{Min: domain.NewMoney(4189), Max: domain.MoneyZero, Rate: decimal.NewFromFloat(0.02)},
		},
		gainsRate:       decimal.NewFromFloat(0.20),
		essentialFloor:  domain.NewMoney(300),
		movingDepositMo: 1,
		movingFee:       domain.NewMoney(300),
		accounts: []AccountSpec{
			{
				Type:      AccountISA,
				Name:      "Stocks & Shares ISA",
				Class:     domain.ClassSavings,
				Capped:    true,
				AnnualCap: domain.NewMoney(20000),
			},
			{
				Type:           AccountLISA,
				Name:           "Lifetime ISA",
				Class:          domain.ClassSavings,
				Capped:         true,
				AnnualCap:      domain.NewMoney(4000),
				MatchRate:      decimal.NewFromFloat(0.25),
				MatchCapAnnual: domain.NewMoney(1000),
			},
			{
				Type:          AccountSIPP,
				Name:          "SIPP",
				Class:         domain.ClassRetirement,
				Capped:        true,
				AnnualCap:     domain.NewMoney(60000),
				TaxDeductible: true,
			},
			{
				Type:  AccountBrokerageUK,
				Name:  "General investment account",
				Class: domain.ClassTaxable,
			},
			{
				Type:  AccountEmergencyUK,
				Name:  "Emergency fund",
				Class: domain.ClassEmergency,
			},
		},
	}
}

func (m *UKMarket) ID() string       { return ukID }
func (m *UKMarket) Name() string     { return "United Kingdom" }
func (m *UKMarket) Currency() string { return "GBP" }

func (m *UKMarket) IncomeTax(gross domain.Money, _ domain.MonthDate) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	taxable := gross.Sub(m.allowance)
	if !taxable.IsPositive() {
		return domain.MoneyZero, nil
	}
	return taxFromBrackets(taxable, m.brackets).RoundDown(2), nil
}

// SocialInsurance applies the Class 1 NI bands; income below the primary
// threshold owes nothing.
func (m *UKMarket) SocialInsurance(gross domain.Money) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	return taxFromBrackets(gross, m.niBands).RoundDown(2), nil
}

// HealthInsurance is zero in this market (NHS); the fallback minimum for
// a no-income month is also zero but the rule is still evaluated.
func (m *UKMarket) HealthInsurance(gross domain.Money, _ domain.EmploymentStatus) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	return domain.MoneyZero, nil
}

func (m *UKMarket) Accounts() []AccountSpec { return m.accounts }

func (m *UKMarket) Account(t domain.AccountType) (AccountSpec, error) {
	for _, spec := range m.accounts {
		if spec.Type == t {
			return spec, nil
		}
	}
	return AccountSpec{}, &domain.ConfigurationError{
		Rule:   ukID,
		Detail: fmt.Sprintf("unknown account type %q", t),
	}
}

// CapitalGainsTax is a flat 20% per lot with no holding-period exemption.
func (m *UKMarket) CapitalGainsTax(lot domain.Lot, accountType domain.AccountType, _ domain.MonthDate) (domain.Money, error) {
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
	return gain.MulRate(m.gainsRate).RoundDown(2), nil
}

func (m *UKMarket) EssentialFloor() domain.Money { return m.essentialFloor }

func (m *UKMarket) HousingCatalogue() []domain.Housing {
	return []domain.Housing{
		{ID: "room-shared", Name: "House share", MonthlyRent: domain.NewMoney(650), MonthlyUtilities: domain.NewMoney(120)},
		{ID: "flat-studio", Name: "Studio flat", MonthlyRent: domain.NewMoney(950), MonthlyUtilities: domain.NewMoney(150)},
		{ID: "flat-1br", Name: "One-bedroom flat", MonthlyRent: domain.NewMoney(1300), MonthlyUtilities: domain.NewMoney(180)},
	}
}

func (m *UKMarket) JobCatalogue() []domain.JobOffer {
	return []domain.JobOffer{
		domain.NewJobOffer("uk-retail-entry", "Retail Assistant", "retail", "High Street Shop", domain.LevelEntry, domain.NewMoney(1700)),
		domain.NewJobOffer("uk-it-entry", "IT Support Technician", "technology", "TechServe Ltd", domain.LevelEntry, domain.NewMoney(2100)),
		domain.NewJobOffer("uk-dev-junior", "Junior Software Developer", "technology", "CodeWorks London", domain.LevelJunior, domain.NewMoney(2900)),
		domain.NewJobOffer("uk-dev-mid", "Software Engineer", "technology", "FinServe plc", domain.LevelMid, domain.NewMoney(4200)),
		domain.NewJobOffer("uk-nurse-mid", "Staff Nurse", "healthcare", "NHS Trust", domain.LevelMid, domain.NewMoney(2800)),
		domain.NewJobOffer("uk-dev-senior", "Senior Software Engineer", "technology", "FinServe plc", domain.LevelSenior, domain.NewMoney(5800)),
		domain.NewJobOffer("uk-lead", "Lead Engineer", "technology", "FinServe plc", domain.LevelLead, domain.NewMoney(7200)),
	}
}

func (m *UKMarket) MovingDepositMonths() int64 { return m.movingDepositMo }
func (m *UKMarket) MovingFee() domain.Money    { return m.movingFee }
func (m *UKMarket) RetirementAge() int         { return 68 }
