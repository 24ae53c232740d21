package generator

import (
	"fmt"
	"time"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

const (
	activityWindow    = 365
	completedNotes    = "방문 완료. 특이사항 없음."
	followUpNoteText  = "다음 달 재방문 필요"
	followUpRate      = 0.3
	minVisitMinutes   = 30
	visitMinutesRange = 60
)

func (g *Generator) activities(now time.Time, households []domain.Household, volunteers []domain.Volunteer) []domain.VisitActivity {
	if len(households) == 0 || len(volunteers) == 0 {
		return []domain.VisitActivity{}
	}
	today := domain.DateOf(now)
	out := make([]domain.VisitActivity, 0, g.cfg.Activities)
	for i := 1; i <= g.cfg.Activities; i++ {
		out = append(out, g.activity(i, today, households, volunteers))
	}
	return out
}

func (g *Generator) activity(i int, today domain.Date, households []domain.Household, volunteers []domain.Volunteer) domain.VisitActivity {
	r := g.rng
	h := pick(r, households)
	v := pick(r, volunteers)
	scheduled := today.AddDays(-r.IntN(activityWindow))

	a := domain.VisitActivity{
		ID:               fmt.Sprintf("ACT-%05d", i),
		VolunteerID:      v.ID,
		VolunteerName:    v.Name,
		HouseholdID:      h.ID,
		HouseholdAddress: h.Region.Address(),
		ScheduledDate:    scheduled,
		VisitType:        pick(r, domain.VisitTypes),
		Status:           pick(r, domain.VisitStatuses),
	}
	if a.Status != domain.VisitCompleted {
		return a
	}

	actual := scheduled
	health := pick(r, domain.HealthStatuses)
	a.ActualDate = &actual
	a.Checklist = domain.Checklist{
		SafetyCheck:      chance(r, 0.9),
		ItemDelivery:     chance(r, 0.7),
		EnvironmentCheck: chance(r, 0.8),
		Consultation:     chance(r, 0.6),
	}
	a.HealthStatus = &health
	a.Notes = completedNotes
	a.DurationMinutes = minVisitMinutes + r.IntN(visitMinutesRange)
	a.FollowUpRequired = chance(r, followUpRate)
	if a.FollowUpRequired {
		a.FollowUpNotes = followUpNoteText
	}
	return a
}
