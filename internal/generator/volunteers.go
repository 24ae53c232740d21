package generator

import (
	"fmt"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/reference"
)

type volunteerProfile struct {
	typ        domain.VolunteerType
	prefix     string
	minVisits  int
	spanVisits int
	minHours   int
	spanHours  int
	activeRate float64
}

var (
	seniorProfile   = volunteerProfile{domain.VolunteerSenior, "VOL-S", 20, 100, 40, 200, 0.9}
	employeeProfile = volunteerProfile{domain.VolunteerEmployee, "VOL-E", 10, 50, 20, 100, 0.95}
)

func (g *Generator) volunteers() []domain.Volunteer {
	out := make([]domain.Volunteer, 0, g.cfg.SeniorVolunteers+g.cfg.EmployeeVolunteers)
	for i := 1; i <= g.cfg.SeniorVolunteers; i++ {
		out = append(out, g.volunteer(seniorProfile, i))
	}
	for i := 1; i <= g.cfg.EmployeeVolunteers; i++ {
		out = append(out, g.volunteer(employeeProfile, i))
	}
	return out
}

func (g *Generator) volunteer(p volunteerProfile, i int) domain.Volunteer {
	r := g.rng
	v := domain.Volunteer{
		ID:          fmt.Sprintf("%s-%03d", p.prefix, i),
		Name:        pick(r, reference.Surnames) + pick(r, reference.GivenNames),
		Type:        p.typ,
		Affiliation: pick(r, reference.Affiliations),
		Region:      pick(r, reference.RegionNames),
		Contact:     fmt.Sprintf("010-%04d-%04d", r.IntN(10000), r.IntN(10000)),
		TotalVisits: p.minVisits + r.IntN(p.spanVisits),
		TotalHours:  p.minHours + r.IntN(p.spanHours),
		Status:      domain.VolunteerInactive,
	}
	if chance(r, p.activeRate) {
		v.Status = domain.VolunteerActive
	}
	return v
}
