// Package output renders simulation results for the CLI in console and
// JSON form.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/milestone"
)

var hundred = decimal.NewFromInt(100)

// SimulationResult bundles everything a run produced.
type SimulationResult struct {
	MarketID string                     `json:"market_id"`
	Currency string                     `json:"currency"`
	Profile  domain.PlayerProfile       `json:"profile"`
	Reports  []*domain.SettlementReport `json:"reports"`
	Final    *domain.FinancialSnapshot  `json:"final"`
	Behavior domain.BehavioralState     `json:"behavior"`
	Metrics  milestone.FIREMetrics      `json:"metrics"`
	Unlocked []string                   `json:"unlocked"`
}

// ReportGenerator renders a SimulationResult in the requested format.
type ReportGenerator struct {
	w io.Writer
}

// NewReportGenerator writes to w.
func NewReportGenerator(w io.Writer) *ReportGenerator {
	return &ReportGenerator{w: w}
}

// Generate renders in the given format ("console" or "json").
func (g *ReportGenerator) Generate(result *SimulationResult, format string) error {
	switch format {
	case "console":
		return g.generateConsole(result)
	case "json":
		return g.generateJSON(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *ReportGenerator) generateJSON(result *SimulationResult) error {
	enc := json.NewEncoder(g.w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (g *ReportGenerator) generateConsole(result *SimulationResult) error {
	cur := result.Currency
	fmt.Fprintf(g.w, "SNOWBALL SIMULATION — %s (%s)\n", result.Profile.Name, result.MarketID)
	fmt.Fprintln(g.w, strings.Repeat("=", 60))

	for _, r := range result.Reports {
		fmt.Fprintf(g.w, "%s  gross %s  tax %s  net %s  expenses %s  cash %s\n",
			r.Month,
			money(r.GrossIncome, cur),
			money(r.Taxes.Total, cur),
			money(r.NetIncome, cur),
			money(r.Expenses.Total, cur),
			money(r.EndingCash, cur))
		for _, c := range r.Contributions {
			if c.Rejected.IsPositive() {
				fmt.Fprintf(g.w, "    %s: contribution of %s rejected, %s remaining this year\n",
					c.Account, money(c.Rejected, cur), money(c.RemainingCap, cur))
				continue
			}
			line := fmt.Sprintf("    %s: +%s", c.Account, money(c.Applied, cur))
			if c.StateMatch.IsPositive() {
				line += fmt.Sprintf(" (match +%s)", money(c.StateMatch, cur))
			}
			fmt.Fprintln(g.w, line)
		}
		for _, d := range r.Disposals {
			fmt.Fprintf(g.w, "    sold %s from %s (tax %s, net %s)\n",
				money(d.GrossProceeds, cur), d.Account, money(d.Tax, cur), money(d.NetProceeds, cur))
		}
		for _, e := range r.Events {
			if !e.MarketRate.IsZero() {
				fmt.Fprintf(g.w, "    event %s: portfolio %s%%\n", e.Name,
					e.MarketRate.Mul(hundred).StringFixed(1))
				continue
			}
			fmt.Fprintf(g.w, "    event %s: %s\n", e.Name, money(e.CashDelta, cur))
		}
	}

	fmt.Fprintln(g.w, strings.Repeat("-", 60))
	fmt.Fprintf(g.w, "Final net worth: %s (cash %s, portfolio %s)\n",
		money(result.Final.NetWorth(), cur),
		money(result.Final.Cash, cur),
		money(result.Final.Portfolio(), cur))
	fmt.Fprintf(g.w, "Happiness %d / Burnout %d / Financial peace %d\n",
		result.Behavior.Happiness, result.Behavior.Burnout, result.Behavior.FinancialPeaceScore())

	m := result.Metrics
	fmt.Fprintf(g.w, "FIRE number %s, progress %s%%\n",
		money(m.FIRENumber, cur), m.Progress.Mul(hundred).StringFixed(1))
	fmt.Fprintf(g.w, "Coast %v | Barista %v | Lean %v | FIRE %v\n",
		m.CoastFIRE, m.BaristaFIRE, m.LeanFIRE, m.FIRE)

	if len(result.Unlocked) > 0 {
		fmt.Fprintf(g.w, "Achievements: %s\n", strings.Join(result.Unlocked, ", "))
	}
	return nil
}

func money(m domain.Money, currency string) string {
	return m.StringFixed(2) + " " + currency
}
