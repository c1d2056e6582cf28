// Package config parses and validates YAML scenario files that drive the
// simulation CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/engine"
	"github.com/snowball-sim/snowball/internal/market"
)

// Scenario is a complete simulation input: market, player, starting
// position and the monthly plan template replayed each month.
type Scenario struct {
	Market string `yaml:"market"`
	Seed   int64  `yaml:"seed"`
	Months int    `yaml:"months"`

	Player struct {
		Name   string `yaml:"name"`
		Age    int    `yaml:"age"`
		Frugal bool   `yaml:"frugal"`
	} `yaml:"player"`

	StartYear    int          `yaml:"start_year"`
	StartMonth   int          `yaml:"start_month"`
	StartingCash domain.Money `yaml:"starting_cash"`

	Job *struct {
		Title        string       `yaml:"title"`
		GrossMonthly domain.Money `yaml:"gross_monthly"`
	} `yaml:"job,omitempty"`

	Housing *struct {
		ID               string       `yaml:"id"`
		Name             string       `yaml:"name"`
		MonthlyRent      domain.Money `yaml:"monthly_rent"`
		MonthlyUtilities domain.Money `yaml:"monthly_utilities"`
	} `yaml:"housing,omitempty"`

	Plan struct {
		Essential     domain.Money `yaml:"essential"`
		Leisure       domain.Money `yaml:"leisure"`
		Transport     domain.Money `yaml:"transport"`
		Education     domain.Money `yaml:"education"`
		Other         domain.Money `yaml:"other"`
		Contributions []struct {
			Account string       `yaml:"account"`
			Amount  domain.Money `yaml:"amount"`
		} `yaml:"contributions,omitempty"`
	} `yaml:"plan"`
}

// Parser loads scenario files.
type Parser struct{}

// NewParser creates a scenario parser.
func NewParser() *Parser {
	return &Parser{}
}

// LoadFromFile reads, parses and validates a YAML scenario.
func (p *Parser) LoadFromFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := p.Validate(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &scenario, nil
}

// Validate checks the scenario before a session is built from it.
func (p *Parser) Validate(s *Scenario) error {
	if s.Market == "" {
		return fmt.Errorf("market is required")
	}
	if s.Months <= 0 {
		return fmt.Errorf("months must be positive, got %d", s.Months)
	}
	if s.Player.Age < 16 || s.Player.Age > 100 {
		return fmt.Errorf("player age must be 16-100, got %d", s.Player.Age)
	}
	if _, err := domain.NewMonthDate(s.StartYear, s.StartMonth); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if s.StartingCash.IsNegative() {
		return fmt.Errorf("starting cash must not be negative")
	}
	if s.Job != nil && s.Job.GrossMonthly.IsNegative() {
		return fmt.Errorf("job gross_monthly must not be negative")
	}
	for i, c := range s.Plan.Contributions {
		if c.Account == "" {
			return fmt.Errorf("contribution %d: account is required", i)
		}
		if !c.Amount.IsPositive() {
			return fmt.Errorf("contribution %d: amount must be positive", i)
		}
	}
	return nil
}

// SessionOptions maps the scenario onto engine options.
func (s *Scenario) SessionOptions(logger engine.Logger) engine.Options {
	opts := engine.Options{
		MarketID: s.Market,
		Seed:     s.Seed,
		Profile: domain.PlayerProfile{
			Name:   s.Player.Name,
			Age:    s.Player.Age,
			Frugal: s.Player.Frugal,
		},
		StartDate:    domain.MonthDate{Year: s.StartYear, Month: s.StartMonth},
		StartingCash: s.StartingCash,
		Logger:       logger,
	}
	if s.Job != nil {
		opts.Job = &domain.Job{Title: s.Job.Title, GrossMonthly: s.Job.GrossMonthly}
	}
	if s.Housing != nil {
		opts.Housing = &domain.Housing{
			ID:               s.Housing.ID,
			Name:             s.Housing.Name,
			MonthlyRent:      s.Housing.MonthlyRent,
			MonthlyUtilities: s.Housing.MonthlyUtilities,
		}
	}
	return opts
}

// MonthlyPlan builds the repeating budget plan and contribution intents.
func (s *Scenario) MonthlyPlan() (domain.BudgetPlan, []engine.ContributionIntent) {
	plan := domain.BudgetPlan{
		domain.CategoryEssential: s.Plan.Essential,
		domain.CategoryLeisure:   s.Plan.Leisure,
		domain.CategoryTransport: s.Plan.Transport,
		domain.CategoryEducation: s.Plan.Education,
		domain.CategoryOther:     s.Plan.Other,
	}
	intents := make([]engine.ContributionIntent, 0, len(s.Plan.Contributions))
	for _, c := range s.Plan.Contributions {
		intents = append(intents, engine.ContributionIntent{
			Account: domain.AccountType(c.Account),
			Amount:  c.Amount,
		})
	}
	return plan, intents
}

// KnownMarkets is re-exported for CLI help text.
func KnownMarkets() []string {
	return market.IDs()
}
