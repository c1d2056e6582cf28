package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/snowball-sim/snowball/internal/config"
	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/engine"
	"github.com/snowball-sim/snowball/internal/market"
	"github.com/snowball-sim/snowball/internal/output"
)

// simpleCLILogger implements engine.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var hundred = decimal.NewFromInt(100)

var rootCmd = &cobra.Command{
	Use:   "snowball",
	Short: "Financial life simulator",
	Long:  "Turn-based financial life simulation: income, taxes, tax-advantaged accounts, budgets and behavioral feedback across national markets",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario-file]",
	Short: "Run a scenario for its configured number of months",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewParser()
		scenario, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		var logger engine.Logger
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			logger = simpleCLILogger{}
		}
		session, err := engine.NewSession(scenario.SessionOptions(logger))
		if err != nil {
			return err
		}

		basePlan, baseIntents := scenario.MonthlyPlan()
		for i := 0; i < scenario.Months; i++ {
			plan, intents, err := adaptPlan(session, basePlan, baseIntents)
			if err != nil {
				return fmt.Errorf("month %d: %w", i+1, err)
			}
			if _, err := session.SubmitPlan(plan, intents, nil); err != nil {
				return fmt.Errorf("month %d: plan rejected: %w", i+1, err)
			}
			if _, err := session.AdvanceMonth(); err != nil {
				return fmt.Errorf("month %d: %w", i+1, err)
			}
		}

		result := &output.SimulationResult{
			MarketID: session.Market().ID(),
			Currency: session.Market().Currency(),
			Profile:  session.Profile(),
			Reports:  session.Reports(),
			Final:    session.CurrentSnapshot(),
			Behavior: session.Behavior(),
			Metrics:  session.FIREMetrics(),
			Unlocked: session.Unlocked(),
		}
		format, _ := cmd.Flags().GetString("format")
		return output.NewReportGenerator(os.Stdout).Generate(result, format)
	},
}

// adaptPlan applies the behavioral modifiers the engine emitted last
// month: the lifestyle-creep essential floor, the revenge-spending
// leisure floor, and clamps contribution intents to each account's
// remaining annual cap.
func adaptPlan(session *engine.Session, base domain.BudgetPlan, intents []engine.ContributionIntent) (domain.BudgetPlan, []engine.ContributionIntent, error) {
	plan := base.Clone()
	behavior := session.Behavior()
	floor := domain.MaxMoney(session.Market().EssentialFloor(), behavior.EssentialBaseline)
	plan[domain.CategoryEssential] = domain.MaxMoney(plan.Get(domain.CategoryEssential), floor)
	plan[domain.CategoryLeisure] = domain.MaxMoney(plan.Get(domain.CategoryLeisure), behavior.RevengeSpendFloor)

	adapted := make([]engine.ContributionIntent, 0, len(intents))
	for _, intent := range intents {
		remaining, capped, err := session.RemainingCap(intent.Account)
		if err != nil {
			return nil, nil, err
		}
		amount := intent.Amount
		if capped {
			amount = domain.MinMoney(amount, remaining)
		}
		if amount.IsPositive() {
			adapted = append(adapted, engine.ContributionIntent{Account: intent.Account, Amount: amount})
		}
	}
	return plan, adapted, nil
}

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List supported markets and their account catalogues",
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range market.IDs() {
			provider, err := market.Select(id)
			if err != nil {
				continue
			}
			fmt.Fprintf(os.Stdout, "%s — %s (%s), retirement age %d\n",
				provider.ID(), provider.Name(), provider.Currency(), provider.RetirementAge())
			for _, spec := range provider.Accounts() {
				line := fmt.Sprintf("  %-18s %s", spec.Type, spec.Name)
				if spec.Capped {
					line += fmt.Sprintf(" (cap %s/yr)", spec.AnnualCap)
				}
				if spec.HasMatch() {
					line += fmt.Sprintf(" [match %s%% up to %s/yr]",
						spec.MatchRate.Mul(hundred).StringFixed(0), spec.MatchCapAnnual)
				}
				fmt.Fprintln(os.Stdout, line)
			}
			for _, h := range provider.HousingCatalogue() {
				fmt.Fprintf(os.Stdout, "  %-18s %s (rent %s + utilities %s)\n",
					h.ID, h.Name, h.MonthlyRent, h.MonthlyUtilities)
			}
			for _, offer := range provider.JobCatalogue() {
				fmt.Fprintf(os.Stdout, "  %-18s %s at %s (%s, %s/mo)\n",
					offer.ID, offer.Title, offer.Company, offer.Level, offer.GrossMonthly)
			}
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "snowball %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Fprintln(os.Stdout, bi.Main.Path)
		}
	},
}

func main() {
	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	simulateCmd.Flags().Bool("debug", false, "Enable debug logging")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(marketsCmd)
	rootCmd.AddCommand(versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
