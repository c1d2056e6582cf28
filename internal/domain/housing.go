package domain

// Housing is the player's active tenancy. At most one Housing is active at
// a time; changing it incurs a one-time moving cost on top of the
// recurring monthly expense.
type Housing struct {
	ID               string `yaml:"id" json:"id"`
	Name             string `yaml:"name" json:"name"`
	MonthlyRent      Money  `yaml:"monthly_rent" json:"monthly_rent"`
	MonthlyUtilities Money  `yaml:"monthly_utilities" json:"monthly_utilities"`
	MonthsOccupied   int    `yaml:"months_occupied" json:"months_occupied"`
}

// TotalMonthlyCost returns rent plus utilities.
func (h Housing) TotalMonthlyCost() Money {
	return h.MonthlyRent.Add(h.MonthlyUtilities)
}

// MovingCost returns the one-time cost of moving in: a security deposit of
// depositMonths months of rent plus a flat fee. Both parameters come from
// the active market's rules.
func (h Housing) MovingCost(depositMonths int64, flatFee Money) Money {
	return h.MonthlyRent.MulInt(depositMonths).Add(flatFee)
}
