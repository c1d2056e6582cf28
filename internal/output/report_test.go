package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowball-sim/snowball/internal/domain"
	"github.com/snowball-sim/snowball/internal/milestone"
)

func sampleResult() *SimulationResult {
	final := domain.NewFinancialSnapshot(domain.MonthDate{Year: 2024, Month: 4})
	final.Cash = domain.NewMoney(28520)
	return &SimulationResult{
		MarketID: "czech",
		Currency: "CZK",
		Profile:  domain.PlayerProfile{Name: "Jana", Age: 28},
		Reports: []*domain.SettlementReport{
			{
				Month:       domain.MonthDate{Year: 2024, Month: 3},
				GrossIncome: domain.NewMoney(30000),
				Taxes:       domain.TaxBreakdown{Total: domain.NewMoney(7980)},
				NetIncome:   domain.NewMoney(22020),
				Expenses:    domain.ExpenseBreakdown{Total: domain.NewMoney(3500)},
				EndingCash:  domain.NewMoney(28520),
				Contributions: []domain.ContributionOutcome{
					{
						Account:      "third_pillar",
						Requested:    domain.NewMoney(30000),
						Rejected:     domain.NewMoney(30000),
						RemainingCap: domain.NewMoney(4000),
					},
				},
			},
		},
		Final:    final,
		Behavior: domain.NewBehavioralState(domain.NewMoney(3500)),
		Metrics:  milestone.FIREMetrics{FIRENumber: domain.NewMoney(9000000)},
		Unlocked: []string{"first_investment"},
	}
}

func TestGenerateConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportGenerator(&buf).Generate(sampleResult(), "console"))

	out := buf.String()
	assert.Contains(t, out, "Jana")
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "22020.00 CZK")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "4000.00 CZK remaining")
	assert.Contains(t, out, "first_investment")
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportGenerator(&buf).Generate(sampleResult(), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "czech", decoded["market_id"])
	assert.Equal(t, "CZK", decoded["currency"])
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewReportGenerator(&buf).Generate(sampleResult(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
