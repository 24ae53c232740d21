package matching

import (
	"math"
	"sort"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

type Engine struct {
	rules Rules
}

func NewEngine(r Rules) *Engine {
	return &Engine{rules: r}
}

func (e *Engine) Rules() Rules { return e.rules }

// Recommend scores every active program for the household and returns the
// best limit of them (rules TopK when limit <= 0). Ties keep catalog order.
func (e *Engine) Recommend(h domain.Household, programs []domain.WelfareProgram, limit int) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(programs))
	for _, p := range programs {
		if p.Status != domain.ProgramActive {
			continue
		}
		score, reasons := e.Score(h, p)
		out = append(out, domain.Recommendation{
			Program: p,
			Score:   score,
			Reasons: reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit <= 0 {
		limit = e.rules.TopK
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score computes one household/program match in 0..100 with the bonuses that applied.
func (e *Engine) Score(h domain.Household, p domain.WelfareProgram) (float64, []domain.ScoreReason) {
	score := e.rules.Base
	var reasons []domain.ScoreReason

	if id, ok := e.rules.HeatingPrograms[h.HeatingType]; ok && id == p.ID {
		score += e.rules.HeatingBonus
		reasons = append(reasons, domain.ScoreReason{
			Type:    "heating_type",
			Message: h.HeatingType + " 난방 가구 맞춤 사업",
			Impact:  e.rules.HeatingBonus,
		})
	}
	if e.rules.ElderlyTag != "" && h.HasCharacteristic(e.rules.ElderlyTag) {
		score += e.rules.ElderlyBonus
		reasons = append(reasons, domain.ScoreReason{
			Type:    "living_alone_elderly",
			Message: e.rules.ElderlyTag + " 가구 우선 지원",
			Impact:  e.rules.ElderlyBonus,
		})
	}
	for _, tag := range e.rules.IncomeTags {
		if h.HasCharacteristic(tag) && p.Eligible(tag) {
			score += e.rules.IncomeBonus
			reasons = append(reasons, domain.ScoreReason{
				Type:    "income_eligibility",
				Message: tag + " 자격 충족",
				Impact:  e.rules.IncomeBonus,
			})
			break
		}
	}

	return clamp(score, 0, 100), topReasons(reasons)
}

func topReasons(reasons []domain.ScoreReason) []domain.ScoreReason {
	if reasons == nil {
		return []domain.ScoreReason{}
	}
	sort.SliceStable(reasons, func(i, j int) bool { return reasons[i].Impact > reasons[j].Impact })
	return reasons
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
