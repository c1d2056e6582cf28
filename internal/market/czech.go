package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
)

// CZECH MARKET RULE ASSUMPTIONS (2024 rule set):
//
// 1. Income tax: 15% up to the monthly bracket boundary of 155,644 CZK
//    (annual 1,867,728 CZK / 12), 23% above. Income exactly at the
//    boundary is taxed entirely at 15%. Taxpayer credits are not modeled.
//
// 2. Social insurance: 7.1% employee portion. Health insurance: 4.5%
//    employee portion, with the statutory minimum of 2,552 CZK/month for
//    persons without taxable income. The minimum applies in any month
//    with no active income regardless of prior months.
//
// 3. Capital gains: the 3-year time test. A lot held 36 or more whole
//    months at disposal is exempt; below that the gain is taxed at 15%.
//
// 4. All amounts owed to the state round down to the haler (2 places).

const czechID = "czech"

// Czech Republic account type identifiers.
const (
	AccountDIP             domain.AccountType = "dip"
	AccountThirdPillar     domain.AccountType = "third_pillar"
	AccountBuildingSavings domain.AccountType = "building_savings"
	AccountBrokerageCZ     domain.AccountType = "brokerage"
	AccountEmergencyCZ     domain.AccountType = "emergency"
)

// CzechMarket implements the 2024 Czech rule set.
type CzechMarket struct {
	brackets        []TaxBracket
	socialRate      decimal.Decimal
	healthRate      decimal.Decimal
	healthMinimum   domain.Money
	gainsRate       decimal.Decimal
	timeTestMonths  int
	essentialFloor  domain.Money
	movingDepositMo int64
	movingFee       domain.Money
	accounts        []AccountSpec
}

// NewCzechMarket creates the Czech provider.
func NewCzechMarket() *CzechMarket {
	boundary := domain.MustMoney("155644") // 1,867,728 CZK annual / 12
	return &CzechMarket{
		brackets: []TaxBracket{
			{Min: domain.MoneyZero, Max: boundary, Rate: decimal.NewFromFloat(0.15)},
			{Min: boundary, Max: domain.MoneyZero, Rate: decimal.NewFromFloat(0.23)},
		},
		socialRate:      decimal.NewFromFloat(0.071),
		healthRate:      decimal.NewFromFloat(0.045),
		healthMinimum:   domain.NewMoney(2552),
		gainsRate:       decimal.NewFromFloat(0.15),
		timeTestMonths:  36,
		essentialFloor:  domain.NewMoney(3500),
		movingDepositMo: 2,
		movingFee:       domain.NewMoney(1500),
		accounts: []AccountSpec{
			{
				Type:          AccountDIP,
				Name:          "DIP (Dlouhodobý investiční produkt)",
				Class:         domain.ClassRetirement,
				Capped:        true,
				AnnualCap:     domain.NewMoney(48000),
				TaxDeductible: true,
			},
			{
				Type:           AccountThirdPillar,
				Name:           "III. pilíř (Doplňkové penzijní spoření)",
				Class:          domain.ClassRetirement,
				Capped:         true,
				AnnualCap:      domain.NewMoney(24000),
				MatchRate:      decimal.NewFromFloat(0.20),
				MatchCapAnnual: domain.NewMoney(4080), // 340 CZK/month state contribution
				TaxDeductible:  true,
			},
			{
				Type:           AccountBuildingSavings,
				Name:           "Stavební spoření",
				Class:          domain.ClassSavings,
				Capped:         true,
				AnnualCap:      domain.NewMoney(20000),
				MatchRate:      decimal.NewFromFloat(0.10),
				MatchCapAnnual: domain.NewMoney(2000),
			},
			{
				Type:  AccountBrokerageCZ,
				Name:  "Brokerage",
				Class: domain.ClassTaxable,
			},
			{
				Type:  AccountEmergencyCZ,
				Name:  "Emergency fund",
				Class: domain.ClassEmergency,
			},
		},
	}
}

func (m *CzechMarket) ID() string       { return czechID }
func (m *CzechMarket) Name() string     { return "Czech Republic" }
func (m *CzechMarket) Currency() string { return "CZK" }

// IncomeTax applies the 15%/23% monthly brackets. Tax rounds down to the
// minor unit.
func (m *CzechMarket) IncomeTax(gross domain.Money, _ domain.MonthDate) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	return taxFromBrackets(gross, m.brackets).RoundDown(2), nil
}

func (m *CzechMarket) SocialInsurance(gross domain.Money) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	return gross.MulRate(m.socialRate).RoundDown(2), nil
}

// HealthInsurance charges 4.5% of gross, or the statutory minimum for a
// month with no active income. The minimum is never skipped.
func (m *CzechMarket) HealthInsurance(gross domain.Money, status domain.EmploymentStatus) (domain.Money, error) {
	if err := validateGross(gross); err != nil {
		return domain.MoneyZero, err
	}
	if status == domain.StatusUnemployed || gross.IsZero() {
		return m.healthMinimum, nil
	}
	return gross.MulRate(m.healthRate).RoundDown(2), nil
}

func (m *CzechMarket) Accounts() []AccountSpec { return m.accounts }

func (m *CzechMarket) Account(t domain.AccountType) (AccountSpec, error) {
	for _, spec := range m.accounts {
		if spec.Type == t {
			return spec, nil
		}
	}
	return AccountSpec{}, &domain.ConfigurationError{
		Rule:   czechID,
		Detail: fmt.Sprintf("unknown account type %q", t),
	}
}

// CapitalGainsTax applies the 3-year time test per lot: held >= 36 whole
// months is exempt, otherwise the gain is taxed at 15%, rounded down.
// Losses owe nothing. Only taxable-class accounts are in scope; gains
// inside retirement, savings and emergency accounts are untaxed here.
func (m *CzechMarket) CapitalGainsTax(lot domain.Lot, accountType domain.AccountType, disposal domain.MonthDate) (domain.Money, error) {
	spec, err := m.Account(accountType)
	if err != nil {
		return domain.MoneyZero, err
	}
	if spec.Class != domain.ClassTaxable {
		return domain.MoneyZero, nil
	}
	if disposal.MonthsSince(lot.AcquiredAt) >= m.timeTestMonths {
		return domain.MoneyZero, nil
	}
	gain := lot.Gain()
	if !gain.IsPositive() {
		return domain.MoneyZero, nil
	}
	return gain.MulRate(m.gainsRate).RoundDown(2), nil
}

func (m *CzechMarket) EssentialFloor() domain.Money { return m.essentialFloor }

func (m *CzechMarket) HousingCatalogue() []domain.Housing {
	return []domain.Housing{
		{ID: "room-shared", Name: "Shared room", MonthlyRent: domain.NewMoney(6500), MonthlyUtilities: domain.NewMoney(1500)},
		{ID: "flat-1kk", Name: "1+kk Žižkov", MonthlyRent: domain.NewMoney(14000), MonthlyUtilities: domain.NewMoney(2500)},
		{ID: "flat-2kk", Name: "2+kk Vinohrady", MonthlyRent: domain.NewMoney(18000), MonthlyUtilities: domain.NewMoney(3000)},
	}
}

func (m *CzechMarket) JobCatalogue() []domain.JobOffer {
	return []domain.JobOffer{
		domain.NewJobOffer("cz-retail-entry", "Sales Associate", "retail", "Local Store", domain.LevelEntry, domain.NewMoney(25000)),
		domain.NewJobOffer("cz-it-entry", "Junior IT Support", "technology", "Tech Solutions s.r.o.", domain.LevelEntry, domain.NewMoney(32000)),
		domain.NewJobOffer("cz-dev-junior", "Junior Software Developer", "technology", "CodeCraft Prague", domain.LevelJunior, domain.NewMoney(45000)),
		domain.NewJobOffer("cz-dev-mid", "Software Developer", "technology", "TechCorp Prague", domain.LevelMid, domain.NewMoney(65000)),
		domain.NewJobOffer("cz-nurse-mid", "Registered Nurse", "healthcare", "Motol Hospital", domain.LevelMid, domain.NewMoney(48000)),
		domain.NewJobOffer("cz-dev-senior", "Senior Software Engineer", "technology", "Avast Software", domain.LevelSenior, domain.NewMoney(90000)),
		domain.NewJobOffer("cz-arch-lead", "Lead Software Architect", "technology", "O2 Czech Republic", domain.LevelLead, domain.NewMoney(120000)),
	}
}

func (m *CzechMarket) MovingDepositMonths() int64 { return m.movingDepositMo }
func (m *CzechMarket) MovingFee() domain.Money    { return m.movingFee }
func (m *CzechMarket) RetirementAge() int         { return 65 }
