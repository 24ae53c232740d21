package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/reference"
)

// StatusWeights follow domain.HouseholdStatuses order.
var StatusWeights = []float64{0.15, 0.20, 0.15, 0.35, 0.15}

var statusSampler = mustWeighted(domain.HouseholdStatuses, StatusWeights)

const (
	minUsage        = 50
	usageMonths     = 12
	detectionWindow = 180
)

func (g *Generator) households(now time.Time) []domain.Household {
	today := domain.DateOf(now)
	out := make([]domain.Household, 0, g.cfg.Households)
	for i := 1; i <= g.cfg.Households; i++ {
		out = append(out, g.household(i, now, today))
	}
	return out
}

func (g *Generator) household(i int, now time.Time, today domain.Date) domain.Household {
	r := g.rng
	place := pick(r, reference.Places)
	score := r.IntN(100)
	status := statusSampler.Pick(r)
	usage := g.monthlyUsage(now, score)
	chars := sample(r, reference.Characteristics, 1+r.IntN(3))
	detected := today.AddDays(-r.IntN(detectionWindow))

	h := domain.Household{
		ID: fmt.Sprintf("HH-%04d", i),
		Region: domain.Region{
			Sido:    place.Sido,
			Sigungu: place.Sigungu,
			Dong:    place.Dong,
			Coordinates: domain.Coordinates{
				Lat: place.Lat + (r.Float64()-0.5)*0.02,
				Lng: place.Lng + (r.Float64()-0.5)*0.02,
			},
		},
		RiskScore: score,
		RiskLevel: domain.RiskLevelFor(score),
		RiskFactors: domain.RiskFactors{
			PowerUsageAnomaly:    r.IntN(100),
			PaymentDelay:         r.IntN(100),
			DisconnectionHistory: r.IntN(100),
			WelfareChange:        r.IntN(100),
			HouseholdRisk:        r.IntN(100),
			SeasonalRisk:         r.IntN(100),
		},
		Characteristics:    chars,
		HouseholdSize:      1 + r.IntN(4),
		HousingType:        pick(r, reference.HousingTypes),
		HeatingType:        pick(r, reference.HeatingTypes),
		MonthlyPowerUsage:  usage,
		AverageUsage:       averageUsage(usage),
		Status:             status,
		DetectedAt:         detected,
		LastUpdated:        today,
		AssignedTo:         fmt.Sprintf("USR-%03d", 1+r.IntN(50)),
		AssignedPowerPlant: pick(r, reference.PowerPlants),
		SupportHistory:     []domain.SupportRecord{},
		ConnectedPrograms:  []string{},
	}

	if status.HasSupport() {
		h.SupportHistory = g.supportHistory(i, detected, today)
		h.ConnectedPrograms = connectedPrograms(h.SupportHistory)
	}
	return h
}

// monthlyUsage produces the trailing twelve months, oldest first. Households
// scoring above 60 get a usage decline that deepens 5% per month.
func (g *Generator) monthlyUsage(now time.Time, score int) []domain.MonthlyUsage {
	r := g.rng
	base := 150 + r.Float64()*200
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := make([]domain.MonthlyUsage, 0, usageMonths)
	for back := usageMonths - 1; back >= 0; back-- {
		month := first.AddDate(0, -back, 0)
		trend := 0.0
		if score > 60 {
			trend = -0.05 * float64(usageMonths-1-back)
		}
		// peaks in winter and summer
		seasonal := math.Sin(float64(int(month.Month())-1-6)*math.Pi/6) * 30
		noise := (r.Float64() - 0.5) * 40
		v := math.Max(minUsage, base*(1+trend)+seasonal+noise)
		out = append(out, domain.MonthlyUsage{Month: domain.MonthKey(month), Usage: int(math.Round(v))})
	}
	return out
}

func averageUsage(usage []domain.MonthlyUsage) int {
	if len(usage) == 0 {
		return 0
	}
	sum := 0
	for _, u := range usage {
		sum += u.Usage
	}
	return int(math.Round(float64(sum) / float64(len(usage))))
}

func (g *Generator) supportHistory(i int, detected, today domain.Date) []domain.SupportRecord {
	r := g.rng
	n := 1 + r.IntN(3)
	out := make([]domain.SupportRecord, 0, n)
	for s := 0; s < n; s++ {
		offer := pick(r, reference.SupportOfferings)
		applied := earlier(detected.AddDays(r.IntN(60)), today)
		completed := earlier(applied.AddDays(r.IntN(14)), today)
		out = append(out, domain.SupportRecord{
			ID:            fmt.Sprintf("SR-%d-%d", i, s),
			ProgramID:     offer.ProgramID,
			ProgramName:   offer.ProgramName,
			Status:        domain.SupportCompleted,
			AppliedAt:     applied,
			CompletedAt:   &completed,
			SupportAmount: offer.Amount,
			Notes:         "정상 지원 완료",
		})
	}
	return out
}

func earlier(a, b domain.Date) domain.Date {
	if a.After(b.Time) {
		return b
	}
	return a
}

func connectedPrograms(history []domain.SupportRecord) []string {
	seen := make(map[string]struct{}, len(history))
	out := make([]string, 0, len(history))
	for _, r := range history {
		if _, ok := seen[r.ProgramID]; ok {
			continue
		}
		seen[r.ProgramID] = struct{}{}
		out = append(out, r.ProgramID)
	}
	return out
}
