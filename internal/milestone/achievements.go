package milestone

import (
	"sort"

	"github.com/snowball-sim/snowball/internal/domain"
)

// Achievement IDs.
const (
	AchFirstInvestment = "first_investment"
	AchEmergencyFund   = "emergency_fund"
	AchHappyTwoYears   = "happy_two_years"
	AchSolventYear     = "solvent_year"
	AchLeanFIRE        = "lean_fire"
	AchFIRE            = "fire"
)

// History is the read-only input to achievement evaluation: one entry per
// settled month, in order.
type History struct {
	Snapshots []*domain.FinancialSnapshot
	Reports   []*domain.SettlementReport
	Moods     []domain.BehavioralState
}

// Achievement is a predicate over the history.
type Achievement struct {
	ID      string
	Name    string
	Unlocks func(h History, metrics FIREMetrics) bool
}

// Evaluator checks achievement predicates over snapshot/behavioral
// history windows. Evaluation is idempotent: the same history always
// yields the same unlock set, with no duplicates.
type Evaluator struct {
	assumptions  Assumptions
	achievements []Achievement
}

// NewEvaluator builds the standard achievement set.
func NewEvaluator(a Assumptions) *Evaluator {
	return &Evaluator{
		assumptions: a,
		achievements: []Achievement{
			{
				ID:   AchFirstInvestment,
				Name: "First investment",
				Unlocks: func(h History, _ FIREMetrics) bool {
					latest := h.Snapshots[len(h.Snapshots)-1]
					return latest.Portfolio().IsPositive()
				},
			},
			{
				ID:   AchEmergencyFund,
				Name: "Emergency fund complete",
				Unlocks: func(h History, m FIREMetrics) bool {
					latest := h.Snapshots[len(h.Snapshots)-1]
					if !m.TrailingMonthlyExpenses.IsPositive() {
						return false
					}
					target := m.TrailingMonthlyExpenses.MulInt(3)
					return latest.ClassBalance(domain.ClassEmergency).GreaterThanOrEqual(target)
				},
			},
			{
				ID:   AchHappyTwoYears,
				Name: "Content for two years",
				Unlocks: func(h History, _ FIREMetrics) bool {
					return consecutive(len(h.Moods), 24, func(i int) bool {
						return h.Moods[i].Happiness > 80
					})
				},
			},
			{
				ID:   AchSolventYear,
				Name: "A year in the black",
				Unlocks: func(h History, _ FIREMetrics) bool {
					return consecutive(len(h.Reports), 12, func(i int) bool {
						return !h.Reports[i].EndingCash.IsNegative()
					})
				},
			},
			{
				ID:   AchLeanFIRE,
				Name: "Lean FIRE",
				Unlocks: func(_ History, m FIREMetrics) bool {
					return m.LeanFIRE
				},
			},
			{
				ID:   AchFIRE,
				Name: "Financial independence",
				Unlocks: func(_ History, m FIREMetrics) bool {
					return m.FIRE
				},
			},
		},
	}
}

// Evaluate returns the full unlock set for the history, merged with any
// previously unlocked IDs (an achievement never re-locks). The result is
// sorted and duplicate-free.
func (ev *Evaluator) Evaluate(h History, age int, previous []string) []string {
	unlocked := make(map[string]bool, len(previous))
	for _, id := range previous {
		unlocked[id] = true
	}
	if len(h.Snapshots) > 0 {
		metrics := EvaluateFIRE(h.Snapshots[len(h.Snapshots)-1], h.Reports, age, ev.assumptions)
		for _, a := range ev.achievements {
			if unlocked[a.ID] {
				continue
			}
			if a.Unlocks(h, metrics) {
				unlocked[a.ID] = true
			}
		}
	}
	out := make([]string, 0, len(unlocked))
	for id := range unlocked {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// consecutive reports whether the last `window` entries (of `n` total)
// exist and all satisfy the predicate.
func consecutive(n, window int, ok func(i int) bool) bool {
	if n < window {
		return false
	}
	for i := n - window; i < n; i++ {
		if !ok(i) {
			return false
		}
	}
	return true
}
