package domain

// ExpenseCategory classifies variable monthly spending. Housing is not a
// category; the active Housing's recurring cost is resolved separately.
type ExpenseCategory string

const (
	CategoryEssential ExpenseCategory = "essential" // groceries, hygiene, transport passes
	CategoryLeisure   ExpenseCategory = "leisure"   // dining out, entertainment
	CategoryTransport ExpenseCategory = "transport"
	CategoryEducation ExpenseCategory = "education"
	CategoryOther     ExpenseCategory = "other"
)

// ExpenseCategories lists every category in a fixed order.
var ExpenseCategories = []ExpenseCategory{
	CategoryEssential,
	CategoryLeisure,
	CategoryTransport,
	CategoryEducation,
	CategoryOther,
}

// IsExpenseCategory reports whether c is a known category.
func IsExpenseCategory(c ExpenseCategory) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// BudgetPlan allocates money per category for the upcoming month. The
// Essential category carries a market-defined minimum floor; every other
// category floors at zero and has no ceiling beyond available cash.
type BudgetPlan map[ExpenseCategory]Money

// Get returns the allocation for a category, zero when absent.
func (p BudgetPlan) Get(c ExpenseCategory) Money {
	return p[c]
}

// Total sums all allocations.
func (p BudgetPlan) Total() Money {
	total := MoneyZero
	for _, c := range ExpenseCategories {
		total = total.Add(p[c])
	}
	return total
}

// Clone copies the plan so an accepted plan cannot be mutated after the
// fact by the caller.
func (p BudgetPlan) Clone() BudgetPlan {
	dup := make(BudgetPlan, len(p))
	for k, v := range p {
		dup[k] = v
	}
	return dup
}

// ExpenseBreakdown is the resolved spending for one month, consumed by
// settlement and reported back to the player.
type ExpenseBreakdown struct {
	Housing    Money                     `yaml:"housing" json:"housing"`
	ByCategory map[ExpenseCategory]Money `yaml:"by_category" json:"by_category"`
	Total      Money                     `yaml:"total" json:"total"`
}

// Essential returns housing plus the essential allocation, the basis for
// Lean FIRE coverage.
func (b ExpenseBreakdown) Essential() Money {
	return b.Housing.Add(b.ByCategory[CategoryEssential])
}

// Category returns the resolved spend for one category.
func (b ExpenseBreakdown) Category(c ExpenseCategory) Money {
	return b.ByCategory[c]
}
