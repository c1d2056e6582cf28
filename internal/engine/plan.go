package engine

import "github.com/snowball-sim/snowball/internal/domain"

// ContributionIntent is one planned account contribution for the month.
type ContributionIntent struct {
	Account domain.AccountType `yaml:"account" json:"account"`
	Amount  domain.Money       `yaml:"amount" json:"amount"`
}

// PlanAction is a discrete decision attached to a plan, applied at the
// start of Execution before income is realized.
type PlanAction interface {
	isPlanAction()
}

// ChangeHousing moves the player; the moving cost is charged against cash
// at the moment of the change.
type ChangeHousing struct {
	Housing domain.Housing
}

// TakeJob starts (or switches to) a job; income applies from this month.
type TakeJob struct {
	Job domain.Job
}

// QuitJob ends employment; the health-insurance minimum starts applying.
type QuitJob struct{}

// Promotion raises the current job's salary and triggers lifestyle creep
// unless the player is frugal.
type Promotion struct {
	NewSalary domain.Money
}

// SellInvestment liquidates part of a lot-tracked account, oldest lots
// first; net proceeds (after any capital-gains tax) credit cash during
// Execution.
type SellInvestment struct {
	Account domain.AccountType
	Amount  domain.Money
}

func (ChangeHousing) isPlanAction()  {}
func (TakeJob) isPlanAction()        {}
func (QuitJob) isPlanAction()        {}
func (Promotion) isPlanAction()      {}
func (SellInvestment) isPlanAction() {}

// PlanAcceptance confirms a validated plan. The plan may still be edited
// or discarded any number of times before AdvanceMonth commits it.
type PlanAcceptance struct {
	ExpectedGrossIncome domain.Money `yaml:"expected_gross_income" json:"expected_gross_income"`
	ExpectedNetIncome   domain.Money `yaml:"expected_net_income" json:"expected_net_income"`
	MovingCost          domain.Money `yaml:"moving_cost" json:"moving_cost"`
}

// acceptedPlan is the pending plan held between SubmitPlan and
// AdvanceMonth.
type acceptedPlan struct {
	budget        domain.BudgetPlan
	contributions []ContributionIntent
	actions       []PlanAction
}
