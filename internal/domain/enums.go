package domain

import "fmt"

type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

var RiskLevels = []RiskLevel{RiskCritical, RiskHigh, RiskMedium, RiskLow}

// RiskLevelFor buckets a 0..100 risk score: >=80 critical, >=60 high, >=40 medium, else low.
func RiskLevelFor(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

func (l RiskLevel) Label() string {
	switch l {
	case RiskCritical:
		return "긴급"
	case RiskHigh:
		return "고위험"
	case RiskMedium:
		return "중위험"
	case RiskLow:
		return "관심"
	}
	return string(l)
}

// Elevated is true for the levels the dashboard counts as high risk.
func (l RiskLevel) Elevated() bool {
	return l == RiskCritical || l == RiskHigh
}

type HouseholdStatus string

const (
	StatusDetected      HouseholdStatus = "detected"
	StatusInvestigating HouseholdStatus = "investigating"
	StatusConnected     HouseholdStatus = "connected"
	StatusSupported     HouseholdStatus = "supported"
	StatusMonitoring    HouseholdStatus = "monitoring"
)

// HouseholdStatuses lists the lifecycle in order.
var HouseholdStatuses = []HouseholdStatus{
	StatusDetected,
	StatusInvestigating,
	StatusConnected,
	StatusSupported,
	StatusMonitoring,
}

func (s HouseholdStatus) Label() string {
	switch s {
	case StatusDetected:
		return "미확인"
	case StatusInvestigating:
		return "확인중"
	case StatusConnected:
		return "연계중"
	case StatusSupported:
		return "지원완료"
	case StatusMonitoring:
		return "모니터링"
	}
	return string(s)
}

// HasSupport is true for statuses that carry a support history.
func (s HouseholdStatus) HasSupport() bool {
	return s == StatusSupported || s == StatusMonitoring
}

// InProgress is true while a case is being checked or connected.
func (s HouseholdStatus) InProgress() bool {
	return s == StatusInvestigating || s == StatusConnected
}

type ProgramCategory string

const (
	CategoryHeating   ProgramCategory = "heating"
	CategoryCooling   ProgramCategory = "cooling"
	CategoryHousing   ProgramCategory = "housing"
	CategoryVoucher   ProgramCategory = "voucher"
	CategoryEmergency ProgramCategory = "emergency"
)

var ProgramCategories = []ProgramCategory{
	CategoryHeating, CategoryCooling, CategoryHousing, CategoryVoucher, CategoryEmergency,
}

// CategoryMeta is the presentation treatment attached to a program category.
type CategoryMeta struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Meta returns the label/icon/colour for c. ok is false for values outside the enum.
func (c ProgramCategory) Meta() (CategoryMeta, bool) {
	switch c {
	case CategoryHeating:
		return CategoryMeta{Label: "난방지원", Icon: "flame", Color: "orange"}, true
	case CategoryCooling:
		return CategoryMeta{Label: "냉방지원", Icon: "snowflake", Color: "blue"}, true
	case CategoryHousing:
		return CategoryMeta{Label: "주거개선", Icon: "home", Color: "green"}, true
	case CategoryVoucher:
		return CategoryMeta{Label: "에너지바우처", Icon: "zap", Color: "purple"}, true
	case CategoryEmergency:
		return CategoryMeta{Label: "긴급지원", Icon: "heart", Color: "red"}, true
	}
	return CategoryMeta{}, false
}

func ParseProgramCategory(s string) (ProgramCategory, error) {
	c := ProgramCategory(s)
	if _, ok := c.Meta(); !ok {
		return "", fmt.Errorf("unknown program category %q", s)
	}
	return c, nil
}

type ProgramStatus string

const (
	ProgramActive   ProgramStatus = "active"
	ProgramUpcoming ProgramStatus = "upcoming"
	ProgramEnded    ProgramStatus = "ended"
)

var ProgramStatuses = []ProgramStatus{ProgramActive, ProgramUpcoming, ProgramEnded}

func (s ProgramStatus) Label() string {
	switch s {
	case ProgramActive:
		return "진행중"
	case ProgramUpcoming:
		return "예정"
	case ProgramEnded:
		return "종료"
	}
	return string(s)
}

type SupportStatus string

const (
	SupportApplied   SupportStatus = "applied"
	SupportReviewing SupportStatus = "reviewing"
	SupportApproved  SupportStatus = "approved"
	SupportDelivered SupportStatus = "delivered"
	SupportCompleted SupportStatus = "completed"
	SupportRejected  SupportStatus = "rejected"
)

type VolunteerType string

const (
	VolunteerSenior   VolunteerType = "senior"
	VolunteerEmployee VolunteerType = "employee"
)

var VolunteerTypes = []VolunteerType{VolunteerSenior, VolunteerEmployee}

func (t VolunteerType) Label() string {
	switch t {
	case VolunteerSenior:
		return "시니어봉사단"
	case VolunteerEmployee:
		return "임직원봉사단"
	}
	return string(t)
}

type VolunteerStatus string

const (
	VolunteerActive   VolunteerStatus = "active"
	VolunteerInactive VolunteerStatus = "inactive"
)

var VolunteerStatuses = []VolunteerStatus{VolunteerActive, VolunteerInactive}

type VisitType string

const (
	VisitWelfareCheck VisitType = "welfare_check"
	VisitDelivery     VisitType = "delivery"
	VisitInspection   VisitType = "inspection"
	VisitEmergency    VisitType = "emergency"
)

var VisitTypes = []VisitType{VisitWelfareCheck, VisitDelivery, VisitInspection, VisitEmergency}

type VisitStatus string

const (
	VisitScheduled   VisitStatus = "scheduled"
	VisitCompleted   VisitStatus = "completed"
	VisitCancelled   VisitStatus = "cancelled"
	VisitRescheduled VisitStatus = "rescheduled"
)

var VisitStatuses = []VisitStatus{VisitScheduled, VisitCompleted, VisitCancelled, VisitRescheduled}

type HealthStatus string

const (
	HealthGood    HealthStatus = "good"
	HealthCaution HealthStatus = "caution"
	HealthDanger  HealthStatus = "danger"
)

var HealthStatuses = []HealthStatus{HealthGood, HealthCaution, HealthDanger}

type AlertType string

const (
	AlertAIDetection AlertType = "ai_detection"
	AlertUrgent      AlertType = "urgent"
	AlertVolunteer   AlertType = "volunteer"
	AlertWelfare     AlertType = "welfare"
	AlertSystem      AlertType = "system"
)

var AlertTypes = []AlertType{AlertAIDetection, AlertUrgent, AlertVolunteer, AlertWelfare, AlertSystem}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
