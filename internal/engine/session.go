// Package engine orchestrates the monthly settlement cycle: it accepts a
// validated plan, realizes income, applies taxes and insurance through
// the market rule provider, applies contributions and their caps through
// the ledger, nets expenses, applies seeded interrupt events, and
// produces the new financial snapshot plus a settlement report. The
// behavioral engine and milestone evaluator run as read-only consumers
// of the finalized month.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/snowball-sim/snowball/internal/behavior"
	"github.com/snowball-sim/snowball/internal/budget"
	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/ledger"
	"github.com/snowball-sim/snowball/internal/market"
	"github.com/snowball-sim/snowball/internal/milestone"
)

// Options configure a new game session. The market is selected here,
// once; switching markets mid-game is unsupported.
type Options struct {
	MarketID     string
	Seed         int64
	Profile      domain.PlayerProfile
	StartDate    domain.MonthDate
	StartingCash domain.Money
	Job          *domain.Job
	Housing      *domain.Housing
	// ExperienceMonths seeds the player's prior work experience, which
	// gates the market's job offers.
	ExperienceMonths int
	Logger           Logger
	// Assumptions for milestone evaluation. Zero value derives the
	// target age from the market's retirement age.
	Assumptions *milestone.Assumptions
}

// Session is one single-player game instance. It exclusively owns the
// current snapshot and behavioral state; no ambient globals. All calls
// are synchronous and must not be made concurrently for the same
// session.
type Session struct {
	id       string
	provider market.Provider
	logger   Logger

	profile  domain.PlayerProfile
	snapshot *domain.FinancialSnapshot
	history  []*domain.FinancialSnapshot
	reports  []*domain.SettlementReport
	moods    []domain.BehavioralState
	behavior domain.BehavioralState
	unlocked []string

	resolver       *budget.Resolver
	behaviorEngine *behavior.Engine
	evaluator      *milestone.Evaluator
	assumptions    milestone.Assumptions

	phase       Phase
	pendingPlan *acceptedPlan
	seed        int64
	monthIndex  int
}

// NewSession initializes a game: resolves the market (an unknown
// identifier is an UnsupportedMarketError), builds the starting snapshot
// and behavioral state, and records the starting snapshot as the first
// history entry.
func NewSession(opts Options) (*Session, error) {
	provider, err := market.Select(opts.MarketID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.NewMonthDate(opts.StartDate.Year, opts.StartDate.Month); err != nil {
		return nil, err
	}
	if opts.StartingCash.IsNegative() {
		return nil, &domain.ValidationError{Field: "starting_cash", Reason: "must not be negative"}
	}
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	assumptions := milestone.DefaultAssumptions(provider.RetirementAge())
	if opts.Assumptions != nil {
		assumptions = *opts.Assumptions
	}

	snapshot := domain.NewFinancialSnapshot(opts.StartDate)
	snapshot.Cash = opts.StartingCash
	snapshot.ExperienceMonths = opts.ExperienceMonths
	if opts.Job != nil {
		j := *opts.Job
		snapshot.Job = &j
	}
	if opts.Housing != nil {
		h := *opts.Housing
		snapshot.Housing = &h
	}

	s := &Session{
		id:             uuid.NewString(),
		provider:       provider,
		logger:         logger,
		profile:        opts.Profile,
		snapshot:       snapshot,
		behavior:       domain.NewBehavioralState(provider.EssentialFloor()),
		resolver:       budget.NewResolver(provider),
		behaviorEngine: behavior.NewEngine(),
		evaluator:      milestone.NewEvaluator(assumptions),
		assumptions:    assumptions,
		phase:          PhasePlanning,
		seed:           opts.Seed,
	}
	s.history = append(s.history, snapshot.Clone())
	return s, nil
}

// ID returns the session's save identifier.
func (s *Session) ID() string { return s.id }

// Market returns the active market provider.
func (s *Session) Market() market.Provider { return s.provider }

// Phase returns the current cycle position.
func (s *Session) Phase() Phase { return s.phase }

// Behavior returns the current behavioral state (copy).
func (s *Session) Behavior() domain.BehavioralState { return s.behavior.Clone() }

// Profile returns the player profile.
func (s *Session) Profile() domain.PlayerProfile { return s.profile }

// CurrentSnapshot returns a copy of the authoritative state.
func (s *Session) CurrentSnapshot() *domain.FinancialSnapshot {
	return s.snapshot.Clone()
}

// SnapshotHistory returns copies of every month-boundary snapshot,
// oldest first, starting with the game-start snapshot.
func (s *Session) SnapshotHistory() []*domain.FinancialSnapshot {
	out := make([]*domain.FinancialSnapshot, len(s.history))
	for i, snap := range s.history {
		out[i] = snap.Clone()
	}
	return out
}

// Reports returns the settlement reports, oldest first.
func (s *Session) Reports() []*domain.SettlementReport {
	out := make([]*domain.SettlementReport, len(s.reports))
	copy(out, s.reports)
	return out
}

// Unlocked returns the achievement IDs unlocked so far, sorted.
func (s *Session) Unlocked() []string {
	return append([]string(nil), s.unlocked...)
}

// RemainingCap reports the unused annual contribution headroom for an
// account type, for planning UIs. The second result is false for
// uncapped accounts.
func (s *Session) RemainingCap(t domain.AccountType) (domain.Money, bool, error) {
	return ledger.New(s.provider, s.snapshot.Accounts).RemainingCap(t)
}

// AvailableJobs lists the market's job offers the player currently
// qualifies for by accumulated work experience.
func (s *Session) AvailableJobs() []domain.JobOffer {
	return market.QualifiedJobs(s.provider.JobCatalogue(), s.snapshot.ExperienceMonths)
}

// FIREMetrics evaluates the FIRE formulas over the current state.
func (s *Session) FIREMetrics() milestone.FIREMetrics {
	return milestone.EvaluateFIRE(s.snapshot, s.reports, s.profile.Age, s.assumptions)
}

// SavedGame assembles the logical persisted shape for the storage
// collaborator.
func (s *Session) SavedGame() domain.SavedGame {
	return domain.SavedGame{
		ID:       s.id,
		MarketID: s.provider.ID(),
		Profile:  s.profile,
		History:  s.SnapshotHistory(),
		Behavior: s.behavior.Clone(),
		Unlocked: s.Unlocked(),
	}
}

// SubmitPlan validates and stages the month's plan. Nothing monetary
// mutates here; a staged plan may be replaced or discarded any number of
// times until AdvanceMonth commits it. Rejections are typed
// ValidationErrors (or CapExceededError for contribution intents).
func (s *Session) SubmitPlan(plan domain.BudgetPlan, contributions []ContributionIntent, actions []PlanAction) (*PlanAcceptance, error) {
	if s.phase != PhasePlanning {
		return nil, &domain.ValidationError{
			Field:  "phase",
			Reason: fmt.Sprintf("plans are accepted only in planning, current phase is %s", s.phase),
		}
	}

	previewJob, previewHousing, movingCost, err := s.previewActions(actions)
	if err != nil {
		return nil, err
	}

	gross := domain.MoneyZero
	status := domain.StatusUnemployed
	if previewJob != nil {
		gross = previewJob.GrossMonthly
		status = domain.StatusEmployed
	}
	taxes, err := s.computeTaxes(gross, status)
	if err != nil {
		return nil, err
	}
	expectedNet := gross.Sub(taxes.Total)

	// Dry-run contribution caps against the current-year counters.
	dryRun := ledger.New(s.provider, s.snapshot.Accounts)
	plannedTotal := domain.MoneyZero
	for _, intent := range contributions {
		if err := dryRun.CheckContribution(intent.Account, intent.Amount); err != nil {
			return nil, err
		}
		plannedTotal = plannedTotal.Add(intent.Amount)
	}

	if err := s.resolver.ValidatePlan(plan, s.snapshot, previewHousing, expectedNet, s.behavior, plannedTotal, movingCost); err != nil {
		return nil, err
	}

	s.pendingPlan = &acceptedPlan{
		budget:        plan.Clone(),
		contributions: append([]ContributionIntent(nil), contributions...),
		actions:       append([]PlanAction(nil), actions...),
	}
	return &PlanAcceptance{
		ExpectedGrossIncome: gross,
		ExpectedNetIncome:   expectedNet,
		MovingCost:          movingCost,
	}, nil
}

// DiscardPlan drops the staged plan.
func (s *Session) DiscardPlan() {
	if s.phase == PhasePlanning {
		s.pendingPlan = nil
	}
}

// previewActions validates plan actions against the current snapshot and
// returns the job and housing that would be active after them plus the
// total moving cost. Execution charges every housing change, so the cost
// accumulates here too.
func (s *Session) previewActions(actions []PlanAction) (*domain.Job, *domain.Housing, domain.Money, error) {
	var job *domain.Job
	if s.snapshot.Job != nil {
		j := *s.snapshot.Job
		job = &j
	}
	var housing *domain.Housing
	if s.snapshot.Housing != nil {
		h := *s.snapshot.Housing
		housing = &h
	}
	movingCost := domain.MoneyZero
	for _, action := range actions {
		switch a := action.(type) {
		case ChangeHousing:
			movingCost = movingCost.Add(s.resolver.MovingCost(a.Housing))
			h := a.Housing
			housing = &h
		case TakeJob:
			j := a.Job
			job = &j
		case QuitJob:
			job = nil
		case Promotion:
			if job == nil {
				return nil, nil, domain.MoneyZero, &domain.ValidationError{
					Field:  "promotion",
					Reason: "cannot be promoted without a job",
				}
			}
			if !a.NewSalary.GreaterThan(job.GrossMonthly) {
				return nil, nil, domain.MoneyZero, &domain.ValidationError{
					Field:  "promotion",
					Reason: "new salary must exceed the current salary",
				}
			}
			j := *job
			j.GrossMonthly = a.NewSalary
			job = &j
		case SellInvestment:
			if !a.Amount.IsPositive() {
				return nil, nil, domain.MoneyZero, &domain.ValidationError{
					Field:  "sell_investment",
					Reason: "amount must be positive",
				}
			}
			if _, err := s.provider.Account(a.Account); err != nil {
				return nil, nil, domain.MoneyZero, err
			}
			acct, ok := s.snapshot.Accounts[a.Account]
			if !ok || a.Amount.GreaterThan(acct.Balance) {
				return nil, nil, domain.MoneyZero, &domain.ValidationError{
					Field:  "sell_investment",
					Reason: fmt.Sprintf("amount %s exceeds the %s balance", a.Amount, a.Account),
				}
			}
		default:
			return nil, nil, domain.MoneyZero, &domain.ConfigurationError{
				Rule:   "plan-action",
				Detail: fmt.Sprintf("unknown action type %T", action),
			}
		}
	}
	return job, housing, movingCost, nil
}

func (s *Session) computeTaxes(gross domain.Money, status domain.EmploymentStatus) (domain.TaxBreakdown, error) {
	incomeTax, err := s.provider.IncomeTax(gross, s.snapshot.Date)
	if err != nil {
		return domain.TaxBreakdown{}, fmt.Errorf("income tax: %w", err)
	}
	social, err := s.provider.SocialInsurance(gross)
	if err != nil {
		return domain.TaxBreakdown{}, fmt.Errorf("social insurance: %w", err)
	}
	health, err := s.provider.HealthInsurance(gross, status)
	if err != nil {
		return domain.TaxBreakdown{}, fmt.Errorf("health insurance: %w", err)
	}
	return domain.TaxBreakdown{
		IncomeTax:       incomeTax,
		SocialInsurance: social,
		HealthInsurance: health,
		Total:           incomeTax.Add(social).Add(health),
	}, nil
}

// promotionEvent records a salary raise applied during execution so the
// lifestyle-creep rule can run once per promotion.
type promotionEvent struct {
	oldSalary domain.Money
	newSalary domain.Money
}

// AdvanceMonth runs Execution and Review for the staged plan. The month
// transition is atomic: everything is computed on a deep working copy
// and committed only if every invariant holds, so any failure leaves the
// prior snapshot unchanged. A month ending with negative cash is a
// normal, recoverable outcome, not a failure.
func (s *Session) AdvanceMonth() (*domain.SettlementReport, error) {
	if s.phase != PhasePlanning {
		return nil, &domain.InvariantViolation{
			Invariant: "phase",
			Detail:    fmt.Sprintf("advance requested during %s", s.phase),
		}
	}
	if s.pendingPlan == nil {
		return nil, &domain.ValidationError{Field: "plan", Reason: "no accepted plan for this month"}
	}

	s.phase = PhaseExecution
	report, working, newBehavior, err := s.executeMonth()
	if err != nil {
		s.phase = PhasePlanning
		s.logger.Errorf("month %s aborted: %v", s.snapshot.Date, err)
		return nil, err
	}

	// Review: commit the finalized month and run the read-only
	// downstream consumers.
	s.phase = PhaseReview
	s.snapshot = working
	s.history = append(s.history, working.Clone())
	s.reports = append(s.reports, report)
	s.behavior = newBehavior
	s.moods = append(s.moods, newBehavior.Clone())
	if working.Date.IsJanuary() {
		s.profile.Age++
	}
	s.unlocked = s.evaluator.Evaluate(milestone.History{
		Snapshots: s.history,
		Reports:   s.reports,
		Moods:     s.moods,
	}, s.profile.Age, s.unlocked)

	s.pendingPlan = nil
	s.monthIndex++
	s.phase = PhasePlanning

	s.logger.Debugf("settled %s: net %s, cash %s", report.Month, report.NetCashDelta, report.EndingCash)
	return report, nil
}

// executeMonth performs all monetary mutation on a working copy.
func (s *Session) executeMonth() (*domain.SettlementReport, *domain.FinancialSnapshot, domain.BehavioralState, error) {
	plan := s.pendingPlan
	working := s.snapshot.Clone()
	led := ledger.New(s.provider, working.Accounts)
	report := &domain.SettlementReport{Month: working.Date}

	var promotions []promotionEvent
	for _, action := range plan.actions {
		switch a := action.(type) {
		case ChangeHousing:
			cost := s.resolver.MovingCost(a.Housing)
			working.Cash = working.Cash.Sub(cost)
			h := a.Housing
			h.MonthsOccupied = 0
			working.Housing = &h
			report.MovingCost = report.MovingCost.Add(cost)
		case TakeJob:
			j := a.Job
			j.MonthsHeld = 0
			working.Job = &j
		case QuitJob:
			working.Job = nil
		case Promotion:
			// Validated at submit; a vanished job here is corruption.
			if working.Job == nil {
				return nil, nil, domain.BehavioralState{}, &domain.InvariantViolation{
					Invariant: "promotion",
					Detail:    "promotion executed without an active job",
				}
			}
			promotions = append(promotions, promotionEvent{
				oldSalary: working.Job.GrossMonthly,
				newSalary: a.NewSalary,
			})
			working.Job.GrossMonthly = a.NewSalary
		case SellInvestment:
			outcome, err := led.Dispose(a.Account, a.Amount, working.Date)
			if err != nil {
				return nil, nil, domain.BehavioralState{}, err
			}
			working.Cash = working.Cash.Add(outcome.NetProceeds)
			report.Disposals = append(report.Disposals, outcome)
		}
	}

	// Taxes are computed on gross income before any discretionary
	// spending; net income, not gross, funds the budget.
	report.GrossIncome = working.GrossMonthlyIncome()
	taxes, err := s.computeTaxes(report.GrossIncome, working.EmploymentStatus())
	if err != nil {
		return nil, nil, domain.BehavioralState{}, err
	}
	report.Taxes = taxes
	report.NetIncome = report.GrossIncome.Sub(taxes.Total)
	working.Cash = working.Cash.Add(report.NetIncome)

	for _, intent := range plan.contributions {
		outcome, err := led.Contribute(intent.Account, intent.Amount, working.Date)
		if err != nil {
			var capErr *domain.CapExceededError
			if errors.As(err, &capErr) {
				// The excess is rejected as an outcome, never silently
				// swallowed: the player sees what was refused and what
				// headroom remains.
				report.Contributions = append(report.Contributions, domain.ContributionOutcome{
					Account:      intent.Account,
					Requested:    intent.Amount,
					Rejected:     intent.Amount,
					RemainingCap: capErr.Remaining,
				})
				continue
			}
			return nil, nil, domain.BehavioralState{}, err
		}
		working.Cash = working.Cash.Sub(outcome.Applied)
		match, err := led.ApplyStateMatch(intent.Account, outcome.Applied, working.Date)
		if err != nil {
			return nil, nil, domain.BehavioralState{}, err
		}
		outcome.StateMatch = match
		report.Contributions = append(report.Contributions, outcome)
	}

	report.Expenses = s.resolver.Resolve(plan.budget, working.Housing)
	working.Cash = working.Cash.Sub(report.Expenses.Total)
	working.EducationInvested = working.EducationInvested.Add(report.Expenses.Category(domain.CategoryEducation))

	report.Events = interruptEvents(s.seed, s.monthIndex, s.provider)
	for _, event := range report.Events {
		working.Cash = working.Cash.Add(event.CashDelta)
		if !event.MarketRate.IsZero() {
			led.ApplyReturn(event.MarketRate)
		}
	}

	if err := led.CheckInvariants(); err != nil {
		return nil, nil, domain.BehavioralState{}, err
	}

	report.EndingCash = working.Cash
	report.NetCashDelta = working.Cash.Sub(s.snapshot.Cash)

	// Advance simulated time; annual counters reset exactly at the
	// calendar-year boundary.
	working.Date = working.Date.Next()
	if working.Date.IsJanuary() {
		led.ResetYearCounters()
	}
	if working.Housing != nil {
		working.Housing.MonthsOccupied++
	}
	if working.Job != nil {
		working.Job.MonthsHeld++
		working.ExperienceMonths++
	}

	// Behavioral feedback: promotions first (once each), then the
	// monthly update with the seeded draw.
	newBehavior := s.behavior
	for _, p := range promotions {
		newBehavior = s.behaviorEngine.ApplyPromotion(newBehavior, p.oldSalary, p.newSalary, s.profile.Frugal)
	}
	newBehavior = s.behaviorEngine.Advance(newBehavior, report, behaviorDraw(s.seed, s.monthIndex))
	report.HappinessDelta = newBehavior.Happiness - s.behavior.Happiness
	report.BurnoutDelta = newBehavior.Burnout - s.behavior.Burnout
	report.FinancialPeace = newBehavior.FinancialPeaceScore()

	return report, working, newBehavior, nil
}
