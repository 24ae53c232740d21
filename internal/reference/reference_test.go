package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrograms_CatalogInvariants(t *testing.T) {
	programs := Programs()
	require.Len(t, programs, 10)

	seen := map[string]bool{}
	for _, p := range programs {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true

		assert.LessOrEqual(t, p.CurrentBeneficiaries, p.MaxBeneficiaries, p.ID)
		assert.False(t, p.EndDate.Before(p.StartDate.Time), p.ID)
		_, ok := p.Category.Meta()
		assert.True(t, ok, "%s has unknown category %q", p.ID, p.Category)
		assert.NotEmpty(t, p.Eligibility, p.ID)
	}
}

func TestPrograms_ReturnsFreshCopy(t *testing.T) {
	a := Programs()
	a[0].Eligibility[0] = "changed"
	assert.NotEqual(t, "changed", Programs()[0].Eligibility[0])
}

func TestSupportOfferings_MatchCatalogNames(t *testing.T) {
	names := map[string]string{}
	for _, p := range Programs() {
		names[p.ID] = p.Name
	}
	for _, o := range SupportOfferings {
		assert.Equal(t, names[o.ProgramID], o.ProgramName, o.ProgramID)
	}
}

func TestPlaces_BelongToKnownProvinces(t *testing.T) {
	provinces := map[string]bool{}
	for _, c := range SidoCentres {
		provinces[c.Sido] = true
	}
	require.Len(t, Places, 36)
	for _, p := range Places {
		assert.True(t, provinces[p.Sido], p.Sido)
	}
}
