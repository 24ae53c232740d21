package generator

import (
	"fmt"
	"sort"
	"time"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/reference"
)

const (
	alertWindowDays = 30
	alertReadRate   = 0.7
)

// alerts are returned newest first.
func (g *Generator) alerts(now time.Time, households []domain.Household) []domain.Alert {
	r := g.rng
	out := make([]domain.Alert, 0, g.cfg.Alerts)
	for i := 1; i <= g.cfg.Alerts; i++ {
		tpl := pick(r, reference.AlertTemplates)
		created := now.AddDate(0, 0, -r.IntN(alertWindowDays)).Add(-time.Duration(r.IntN(24*60)) * time.Minute)

		a := domain.Alert{
			ID:        fmt.Sprintf("ALT-%04d", i),
			Type:      tpl.Type,
			Priority:  tpl.Priority,
			Title:     tpl.Title,
			Message:   tpl.Suffix,
			CreatedAt: created,
		}
		if tpl.Household && len(households) > 0 {
			h := pick(r, households)
			a.HouseholdID = h.ID
			a.Message = h.Region.Sigungu + " " + h.Region.Dong + tpl.Suffix
		}
		if chance(r, alertReadRate) {
			read := created.Add(time.Duration(r.Int64N(int64(now.Sub(created)) + 1)))
			a.IsRead = true
			a.ReadAt = &read
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
