package domain

// FinancialSnapshot is the authoritative state at a month boundary. The
// settlement engine computes each month on a deep copy and replaces the
// session's snapshot only on success, so a failed month leaves the prior
// snapshot untouched and the retained history is immutable.
type FinancialSnapshot struct {
	Date     MonthDate                `yaml:"date" json:"date"`
	Cash     Money                    `yaml:"cash" json:"cash"`
	Accounts map[AccountType]*Account `yaml:"accounts" json:"accounts"`
	Housing  *Housing                 `yaml:"housing,omitempty" json:"housing,omitempty"`
	Job      *Job                     `yaml:"job,omitempty" json:"job,omitempty"`

	// ExperienceMonths counts months worked across all jobs; job offers
	// gate on it.
	ExperienceMonths int `yaml:"experience_months" json:"experience_months"`
	// EducationInvested accumulates every education spend for the life of
	// the game.
	EducationInvested Money `yaml:"education_invested" json:"education_invested"`
}

// NewFinancialSnapshot creates an empty snapshot at the given month.
func NewFinancialSnapshot(date MonthDate) *FinancialSnapshot {
	return &FinancialSnapshot{
		Date:     date,
		Accounts: make(map[AccountType]*Account),
	}
}

// Clone deep-copies the snapshot.
func (s *FinancialSnapshot) Clone() *FinancialSnapshot {
	dup := &FinancialSnapshot{
		Date:              s.Date,
		Cash:              s.Cash,
		Accounts:          make(map[AccountType]*Account, len(s.Accounts)),
		ExperienceMonths:  s.ExperienceMonths,
		EducationInvested: s.EducationInvested,
	}
	for t, a := range s.Accounts {
		dup.Accounts[t] = a.Clone()
	}
	if s.Housing != nil {
		h := *s.Housing
		dup.Housing = &h
	}
	if s.Job != nil {
		j := *s.Job
		dup.Job = &j
	}
	return dup
}

// GrossMonthlyIncome returns the gross salary, zero when unemployed.
func (s *FinancialSnapshot) GrossMonthlyIncome() Money {
	if s.Job == nil {
		return MoneyZero
	}
	return s.Job.GrossMonthly
}

// EmploymentStatus derives the status used by insurance rules.
func (s *FinancialSnapshot) EmploymentStatus() EmploymentStatus {
	if s.Job == nil {
		return StatusUnemployed
	}
	return StatusEmployed
}

// Portfolio sums all account balances.
func (s *FinancialSnapshot) Portfolio() Money {
	total := MoneyZero
	for _, a := range s.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// ClassBalance sums balances of accounts in one class.
func (s *FinancialSnapshot) ClassBalance(class AccountClass) Money {
	total := MoneyZero
	for _, a := range s.Accounts {
		if a.Class == class {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// NetWorth is cash plus portfolio. Negative cash (overdraft) reduces it.
func (s *FinancialSnapshot) NetWorth() Money {
	return s.Cash.Add(s.Portfolio())
}
