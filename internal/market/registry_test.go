package market

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectKnownMarkets(t *testing.T) {
	for _, id := range IDs() {
		provider, err := Select(id)
		require.NoError(t, err)
		assert.Equal(t, id, provider.ID())
		assert.NotEmpty(t, provider.Currency())
		assert.NotEmpty(t, provider.Accounts())
		assert.NotEmpty(t, provider.HousingCatalogue())
		for _, h := range provider.HousingCatalogue() {
			assert.NotEmpty(t, h.ID)
			assert.True(t, h.MonthlyRent.IsPositive())
			assert.True(t, h.TotalMonthlyCost().GreaterThan(h.MonthlyRent))
		}
		require.NotEmpty(t, provider.JobCatalogue())
		hasEntry := false
		for _, offer := range provider.JobCatalogue() {
			assert.NotEmpty(t, offer.ID)
			assert.True(t, offer.GrossMonthly.IsPositive())
			if offer.RequiredExperienceMonths == 0 {
				hasEntry = true
			}
		}
		assert.True(t, hasEntry, "every market offers an entry-level job")
	}
}

func TestQualifiedJobsFilter(t *testing.T) {
	provider, err := Select("czech")
	require.NoError(t, err)
	catalogue := provider.JobCatalogue()

	entry := QualifiedJobs(catalogue, 0)
	for _, offer := range entry {
		assert.Equal(t, 0, offer.RequiredExperienceMonths)
	}
	assert.Less(t, len(entry), len(catalogue))

	assert.Len(t, QualifiedJobs(catalogue, 240), len(catalogue))
}

func TestSelectUnknownMarket(t *testing.T) {
	_, err := Select("mars")
	require.Error(t, err)
	var unsupported *UnsupportedMarketError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "mars", unsupported.ID)
}

func TestIDsAreSorted(t *testing.T) {
	assert.Equal(t, []string{"czech", "uk", "usa"}, IDs())
}
