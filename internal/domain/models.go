package domain

import "time"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Region struct {
	Sido        string      `json:"sido"`
	Sigungu     string      `json:"sigungu"`
	Dong        string      `json:"dong"`
	Coordinates Coordinates `json:"coordinates"`
}

// Address is the "sido sigungu dong" form used in visit records and alerts.
func (r Region) Address() string {
	return r.Sido + " " + r.Sigungu + " " + r.Dong
}

// RiskFactors are the six sub-scores (0..100) behind a household's risk score.
type RiskFactors struct {
	PowerUsageAnomaly    int `json:"power_usage_anomaly"`
	PaymentDelay         int `json:"payment_delay"`
	DisconnectionHistory int `json:"disconnection_history"`
	WelfareChange        int `json:"welfare_change"`
	HouseholdRisk        int `json:"household_risk"`
	SeasonalRisk         int `json:"seasonal_risk"`
}

type MonthlyUsage struct {
	Month string `json:"month"` // YYYY-MM
	Usage int    `json:"usage"`
}

type SupportRecord struct {
	ID            string        `json:"id"`
	ProgramID     string        `json:"program_id"`
	ProgramName   string        `json:"program_name"`
	Status        SupportStatus `json:"status"`
	AppliedAt     Date          `json:"applied_at"`
	CompletedAt   *Date         `json:"completed_at,omitempty"`
	SupportAmount string        `json:"support_amount"`
	Notes         string        `json:"notes"`
}

type Household struct {
	ID                 string          `json:"id"`
	Region             Region          `json:"region"`
	RiskScore          int             `json:"risk_score"`
	RiskLevel          RiskLevel       `json:"risk_level"`
	RiskFactors        RiskFactors     `json:"risk_factors"`
	Characteristics    []string        `json:"characteristics"`
	HouseholdSize      int             `json:"household_size"`
	HousingType        string          `json:"housing_type"`
	HeatingType        string          `json:"heating_type"`
	MonthlyPowerUsage  []MonthlyUsage  `json:"monthly_power_usage"`
	AverageUsage       int             `json:"average_usage"`
	Status             HouseholdStatus `json:"status"`
	DetectedAt         Date            `json:"detected_at"`
	LastUpdated        Date            `json:"last_updated"`
	AssignedTo         string          `json:"assigned_to"`
	AssignedPowerPlant string          `json:"assigned_power_plant"`
	SupportHistory     []SupportRecord `json:"support_history"`
	ConnectedPrograms  []string        `json:"connected_programs"`
}

// HasCharacteristic reports whether tag is one of the household's characteristics.
func (h Household) HasCharacteristic(tag string) bool {
	for _, c := range h.Characteristics {
		if c == tag {
			return true
		}
	}
	return false
}

type WelfareProgram struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             ProgramCategory `json:"category"`
	Description          string          `json:"description"`
	Provider             string          `json:"provider"`
	Status               ProgramStatus   `json:"status"`
	Budget               int64           `json:"budget"`
	CurrentBeneficiaries int             `json:"current_beneficiaries"`
	MaxBeneficiaries     int             `json:"max_beneficiaries"`
	SupportAmount        int64           `json:"support_amount"`
	StartDate            Date            `json:"start_date"`
	EndDate              Date            `json:"end_date"`
	Eligibility          []string        `json:"eligibility"`
	RequiredDocuments    []string        `json:"required_documents"`
}

// Eligible reports whether tag appears in the program's eligibility list.
func (p WelfareProgram) Eligible(tag string) bool {
	for _, e := range p.Eligibility {
		if e == tag {
			return true
		}
	}
	return false
}

// Utilization is current/max beneficiaries, 0 when the program has no cap.
func (p WelfareProgram) Utilization() float64 {
	if p.MaxBeneficiaries <= 0 {
		return 0
	}
	return float64(p.CurrentBeneficiaries) / float64(p.MaxBeneficiaries)
}

type Volunteer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        VolunteerType   `json:"type"`
	Affiliation string          `json:"affiliation"`
	Region      string          `json:"region"`
	Contact     string          `json:"contact"`
	TotalVisits int             `json:"total_visits"`
	TotalHours  int             `json:"total_hours"`
	Status      VolunteerStatus `json:"status"`
}

type Checklist struct {
	SafetyCheck      bool `json:"safety_check"`
	ItemDelivery     bool `json:"item_delivery"`
	EnvironmentCheck bool `json:"environment_check"`
	Consultation     bool `json:"consultation"`
}

type VisitActivity struct {
	ID               string        `json:"id"`
	VolunteerID      string        `json:"volunteer_id"`
	VolunteerName    string        `json:"volunteer_name"`
	HouseholdID      string        `json:"household_id"`
	HouseholdAddress string        `json:"household_address"`
	ScheduledDate    Date          `json:"scheduled_date"`
	ActualDate       *Date         `json:"actual_date,omitempty"`
	VisitType        VisitType     `json:"visit_type"`
	Status           VisitStatus   `json:"status"`
	Checklist        Checklist     `json:"checklist"`
	HealthStatus     *HealthStatus `json:"health_status,omitempty"`
	Notes            string        `json:"notes"`
	DurationMinutes  int           `json:"duration_minutes,omitempty"`
	FollowUpRequired bool          `json:"follow_up_required"`
	FollowUpNotes    string        `json:"follow_up_notes,omitempty"`
}

type Alert struct {
	ID          string     `json:"id"`
	Type        AlertType  `json:"type"`
	Priority    Priority   `json:"priority"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	HouseholdID string     `json:"household_id,omitempty"`
	IsRead      bool       `json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}
