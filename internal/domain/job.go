package domain

// EmploymentStatus feeds the health-insurance rule: markets with a
// mandatory minimum charge apply it whenever the player has no active
// income.
type EmploymentStatus string

const (
	StatusEmployed   EmploymentStatus = "employed"
	StatusUnemployed EmploymentStatus = "unemployed"
)

// Job is the player's current employment.
type Job struct {
	Title        string `yaml:"title" json:"title"`
	GrossMonthly Money  `yaml:"gross_monthly" json:"gross_monthly"`
	MonthsHeld   int    `yaml:"months_held" json:"months_held"`
}

// JobLevel orders seniority. Higher levels gate on more accumulated work
// experience.
type JobLevel string

const (
	LevelEntry  JobLevel = "entry"
	LevelJunior JobLevel = "junior"
	LevelMid    JobLevel = "mid"
	LevelSenior JobLevel = "senior"
	LevelLead   JobLevel = "lead"
)

// MinExperienceMonths returns the work experience an offer at this level
// requires.
func (l JobLevel) MinExperienceMonths() int {
	switch l {
	case LevelJunior:
		return 24
	case LevelMid:
		return 48
	case LevelSenior:
		return 84
	case LevelLead:
		return 120
	default:
		return 0
	}
}

// JobOffer is one opening on a market's job board.
type JobOffer struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Field        string   `yaml:"field" json:"field"`
	Company      string   `yaml:"company" json:"company"`
	Level        JobLevel `yaml:"level" json:"level"`
	GrossMonthly Money    `yaml:"gross_monthly" json:"gross_monthly"`

	// RequiredExperienceMonths gates the offer on total months worked
	// across all jobs.
	RequiredExperienceMonths int `yaml:"required_experience_months" json:"required_experience_months"`
}

// NewJobOffer builds an offer whose experience requirement follows its
// level.
func NewJobOffer(id, title, field, company string, level JobLevel, gross Money) JobOffer {
	return JobOffer{
		ID:                       id,
		Title:                    title,
		Field:                    field,
		Company:                  company,
		Level:                    level,
		GrossMonthly:             gross,
		RequiredExperienceMonths: level.MinExperienceMonths(),
	}
}

// QualifiesWith reports whether a player with the given months of work
// experience can take the offer.
func (o JobOffer) QualifiesWith(experienceMonths int) bool {
	return experienceMonths >= o.RequiredExperienceMonths
}

// Job returns the employment held after accepting the offer.
func (o JobOffer) Job() Job {
	return Job{Title: o.Title, GrossMonthly: o.GrossMonthly}
}

// PlayerProfile carries the traits that shape behavioral feedback. Frugal
// players do not accumulate lifestyle creep on promotions.
type PlayerProfile struct {
	Name   string `yaml:"name" json:"name"`
	Age    int    `yaml:"age" json:"age"`
	Frugal bool   `yaml:"frugal" json:"frugal"`
}
