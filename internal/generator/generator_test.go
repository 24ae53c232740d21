package generator

import (
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/reference"
)

var fixedNow = time.Date(2024, time.December, 15, 10, 30, 0, 0, time.UTC)

func newTestGenerator(seed uint64) *Generator {
	return New(Options{
		Config: DefaultConfig(),
		Seed:   seed,
		Now:    func() time.Time { return fixedNow },
	})
}

func generate(t *testing.T, seed uint64) *dataset.Snapshot {
	t.Helper()
	return newTestGenerator(seed).Generate()
}

func TestGenerate_Counts(t *testing.T) {
	snap := generate(t, 7)
	cfg := DefaultConfig()

	assert.Len(t, snap.Households(), cfg.Households)
	assert.Len(t, snap.Volunteers(), cfg.SeniorVolunteers+cfg.EmployeeVolunteers)
	assert.Len(t, snap.Activities(), cfg.Activities)
	assert.Len(t, snap.Alerts(), cfg.Alerts)
	assert.Len(t, snap.Programs(), 10)
	assert.Equal(t, uint64(7), snap.Meta().Seed)
	assert.Equal(t, fixedNow, snap.Meta().GeneratedAt)
}

func TestGenerate_RiskLevelFollowsScore(t *testing.T) {
	for _, h := range generate(t, 1).Households() {
		require.GreaterOrEqual(t, h.RiskScore, 0)
		require.Less(t, h.RiskScore, 100)
		require.Equal(t, domain.RiskLevelFor(h.RiskScore), h.RiskLevel, h.ID)
	}
}

func TestGenerate_AverageUsageIsRoundedMean(t *testing.T) {
	for _, h := range generate(t, 2).Households() {
		require.Len(t, h.MonthlyPowerUsage, 12)
		sum := 0
		for _, u := range h.MonthlyPowerUsage {
			require.GreaterOrEqual(t, u.Usage, minUsage)
			sum += u.Usage
		}
		want := int(float64(sum)/12 + 0.5)
		require.Equal(t, want, h.AverageUsage, h.ID)
	}
}

func TestGenerate_UsageMonthsEndAtCurrentMonth(t *testing.T) {
	h := generate(t, 3).Households()[0]
	assert.Equal(t, "2024-01", h.MonthlyPowerUsage[0].Month)
	assert.Equal(t, "2024-12", h.MonthlyPowerUsage[11].Month)
}

func TestGenerate_SupportHistoryOnlyForSupportedStatuses(t *testing.T) {
	today := domain.DateOf(fixedNow)
	offers := map[string]reference.SupportOffering{}
	for _, o := range reference.SupportOfferings {
		offers[o.ProgramID] = o
	}

	for _, h := range generate(t, 4).Households() {
		if !h.Status.HasSupport() {
			assert.Empty(t, h.SupportHistory, h.ID)
			assert.Empty(t, h.ConnectedPrograms, h.ID)
			continue
		}
		require.NotEmpty(t, h.SupportHistory, h.ID)
		require.LessOrEqual(t, len(h.SupportHistory), 3)
		for _, r := range h.SupportHistory {
			o, ok := offers[r.ProgramID]
			require.True(t, ok, r.ProgramID)
			assert.Equal(t, o.ProgramName, r.ProgramName)
			assert.Equal(t, o.Amount, r.SupportAmount)
			assert.False(t, r.AppliedAt.Before(h.DetectedAt.Time), r.ID)
			assert.False(t, r.AppliedAt.After(today.Time), r.ID)
			require.NotNil(t, r.CompletedAt)
			assert.False(t, r.CompletedAt.Before(r.AppliedAt.Time), r.ID)
			assert.Contains(t, h.ConnectedPrograms, r.ProgramID)
		}
	}
}

func TestGenerate_CharacteristicsDistinct(t *testing.T) {
	for _, h := range generate(t, 5).Households() {
		require.NotEmpty(t, h.Characteristics)
		require.LessOrEqual(t, len(h.Characteristics), 3)
		seen := map[string]bool{}
		for _, c := range h.Characteristics {
			require.False(t, seen[c], "duplicate %s in %s", c, h.ID)
			seen[c] = true
		}
	}
}

func TestGenerate_SameSeedSameSnapshot(t *testing.T) {
	a := generate(t, 42)
	b := generate(t, 42)

	assert.Equal(t, a.Meta().ID, b.Meta().ID)
	if diff := cmp.Diff(a.Households(), b.Households()); diff != "" {
		t.Fatalf("households differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Volunteers(), b.Volunteers()); diff != "" {
		t.Fatalf("volunteers differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Activities(), b.Activities()); diff != "" {
		t.Fatalf("activities differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Alerts(), b.Alerts()); diff != "" {
		t.Fatalf("alerts differ (-a +b):\n%s", diff)
	}

	c := generate(t, 43)
	assert.NotEqual(t, a.Meta().ID, c.Meta().ID)
}

func TestGenerate_IDTracksGenerationTime(t *testing.T) {
	at := func(now time.Time) *dataset.Snapshot {
		return New(Options{
			Config: Config{Households: 5, SeniorVolunteers: 1, EmployeeVolunteers: 1, Activities: 3, Alerts: 2},
			Seed:   20241215,
			Now:    func() time.Time { return now },
		}).Generate()
	}
	a := at(fixedNow)
	b := at(fixedNow.AddDate(0, 0, 1))

	assert.NotEqual(t, a.Households()[0].DetectedAt, b.Households()[0].DetectedAt)
	assert.NotEqual(t, a.Meta().ID, b.Meta().ID)
	assert.Equal(t, a.Meta().ID, at(fixedNow).Meta().ID)
	assert.Equal(t, a.Meta().ID, at(fixedNow.In(time.FixedZone("KST", 9*60*60))).Meta().ID)
}

func TestMonthlyUsage_DeclineForHighRisk(t *testing.T) {
	// same seed, same draws: the series differ only by the risk trend
	usage := func(score int) []int {
		series := newTestGenerator(99).monthlyUsage(fixedNow, score)
		require.Len(t, series, usageMonths)
		out := make([]int, len(series))
		for i, m := range series {
			require.GreaterOrEqual(t, m.Usage, minUsage)
			out[i] = m.Usage
		}
		return out
	}
	low := usage(10)
	high := usage(90)

	assert.Equal(t, low, usage(60), "60 is not above the trend threshold")
	assert.Equal(t, low[0], high[0], "oldest month has no decline")
	for k := 1; k < usageMonths; k++ {
		assert.Less(t, high[k], low[k], "month %d", k)
	}
	// base >= 150 keeps the first seven months above the floor, so the
	// gap grows by base*5% (>= 7.5) a month there
	for k := 1; k <= 6; k++ {
		assert.Greater(t, low[k]-high[k], low[k-1]-high[k-1], "month %d", k)
	}
}

func TestMonthlyUsage_FloorAcrossSnapshot(t *testing.T) {
	for _, h := range generate(t, 3).Households() {
		for _, m := range h.MonthlyPowerUsage {
			require.GreaterOrEqual(t, m.Usage, minUsage, h.ID)
		}
	}
}

func TestNew_ZeroSeedDerivedFromClock(t *testing.T) {
	g := newTestGenerator(0)
	assert.Equal(t, uint64(fixedNow.UnixNano()), g.Seed())
}

func TestGenerate_Volunteers(t *testing.T) {
	idPattern := regexp.MustCompile(`^VOL-[SE]-\d{3}$`)
	contact := regexp.MustCompile(`^010-\d{4}-\d{4}$`)
	for _, v := range generate(t, 6).Volunteers() {
		require.Regexp(t, idPattern, v.ID)
		require.Regexp(t, contact, v.Contact)
		switch v.Type {
		case domain.VolunteerSenior:
			assert.GreaterOrEqual(t, v.TotalVisits, 20)
			assert.Less(t, v.TotalVisits, 120)
			assert.GreaterOrEqual(t, v.TotalHours, 40)
			assert.Less(t, v.TotalHours, 240)
		case domain.VolunteerEmployee:
			assert.GreaterOrEqual(t, v.TotalVisits, 10)
			assert.Less(t, v.TotalVisits, 60)
			assert.GreaterOrEqual(t, v.TotalHours, 20)
			assert.Less(t, v.TotalHours, 120)
		default:
			t.Fatalf("unexpected volunteer type %q", v.Type)
		}
	}
}

func TestGenerate_ActivitiesCompletedCarryOutcome(t *testing.T) {
	snap := generate(t, 8)
	for _, a := range snap.Activities() {
		_, ok := snap.Household(a.HouseholdID)
		require.True(t, ok, a.HouseholdID)
		_, ok = snap.Volunteer(a.VolunteerID)
		require.True(t, ok, a.VolunteerID)

		if a.Status != domain.VisitCompleted {
			assert.Nil(t, a.ActualDate, a.ID)
			assert.Nil(t, a.HealthStatus, a.ID)
			assert.Zero(t, a.DurationMinutes, a.ID)
			assert.Equal(t, domain.Checklist{}, a.Checklist, a.ID)
			continue
		}
		require.NotNil(t, a.ActualDate, a.ID)
		require.NotNil(t, a.HealthStatus, a.ID)
		assert.GreaterOrEqual(t, a.DurationMinutes, 30)
		assert.Less(t, a.DurationMinutes, 90)
		assert.Equal(t, a.FollowUpRequired, a.FollowUpNotes != "", a.ID)
	}
}

func TestGenerate_AlertsNewestFirstAndReadAtIffRead(t *testing.T) {
	alerts := generate(t, 9).Alerts()
	for i, a := range alerts {
		if i > 0 {
			require.False(t, a.CreatedAt.After(alerts[i-1].CreatedAt), "alerts not sorted at %d", i)
		}
		assert.Equal(t, a.IsRead, a.ReadAt != nil, a.ID)
		assert.LessOrEqual(t, fixedNow.Sub(a.CreatedAt), 30*24*time.Hour)
		if a.Type == domain.AlertSystem {
			assert.Empty(t, a.HouseholdID)
			assert.Equal(t, "주간 리포트가 생성되었습니다.", a.Message)
		} else {
			assert.NotEmpty(t, a.HouseholdID)
		}
	}
}

func TestGenerate_EmptyConfig(t *testing.T) {
	snap := New(Options{Seed: 1, Now: func() time.Time { return fixedNow }}).Generate()
	assert.Empty(t, snap.Households())
	assert.Empty(t, snap.Activities())
	assert.Empty(t, snap.Alerts())
	assert.Len(t, snap.Programs(), 10)
}

func TestStatusSampler_FrequenciesMatchWeights(t *testing.T) {
	const draws = 200_000
	r := rand.New(rand.NewPCG(11, 12))
	counts := map[domain.HouseholdStatus]int{}
	for range draws {
		counts[statusSampler.Pick(r)]++
	}
	for i, s := range domain.HouseholdStatuses {
		got := float64(counts[s]) / draws
		assert.InDelta(t, StatusWeights[i], got, 0.01, "status %s", s)
	}
}

func TestWeighted_RemainderFallsToLast(t *testing.T) {
	w, err := NewWeighted([]string{"a", "b"}, []float64{0, 0})
	require.NoError(t, err)
	r := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		require.Equal(t, "b", w.Pick(r))
	}
}

func TestNewWeighted_Rejects(t *testing.T) {
	_, err := NewWeighted([]int{1, 2}, []float64{1})
	assert.Error(t, err)
	_, err = NewWeighted([]int{1}, []float64{-1})
	assert.Error(t, err)
	_, err = NewWeighted([]int{}, []float64{})
	assert.Error(t, err)
}

func TestSample_DistinctAndBounded(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	items := []int{1, 2, 3, 4}
	got := sample(r, items, 10)
	assert.ElementsMatch(t, items, got)
	assert.Equal(t, []int{1, 2, 3, 4}, items, "input must not be mutated")
}
