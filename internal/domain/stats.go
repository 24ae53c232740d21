package domain

type DashboardStats struct {
	TotalHouseholds  int `json:"total_households"`
	NewThisMonth     int `json:"new_this_month"`
	HighRisk         int `json:"high_risk"`
	MediumRisk       int `json:"medium_risk"`
	LowRisk          int `json:"low_risk"`
	Supported        int `json:"supported"`
	InProgress       int `json:"in_progress"`
	TotalVolunteers  int `json:"total_volunteers"`
	ActiveVolunteers int `json:"active_volunteers"`
	ThisMonthVisits  int `json:"this_month_visits"`
	ThisMonthHours   int `json:"this_month_hours"`
}

type MonthlyTrend struct {
	Month     string `json:"month"`
	Detected  int    `json:"detected"`
	Supported int    `json:"supported"`
	Visits    int    `json:"visits"`
}

type RegionStats struct {
	Sido        string      `json:"sido"`
	Total       int         `json:"total"`
	HighRisk    int         `json:"high_risk"`
	Supported   int         `json:"supported"`
	Coordinates Coordinates `json:"coordinates"`
}

type ProgramUtilization struct {
	ProgramID   string  `json:"program_id"`
	Name        string  `json:"name"`
	Utilization float64 `json:"utilization"`
}

type ProgramStats struct {
	Total              int                  `json:"total"`
	Active             int                  `json:"active"`
	TotalBudget        int64                `json:"total_budget"`
	TotalBeneficiaries int                  `json:"total_beneficiaries"`
	Utilization        []ProgramUtilization `json:"utilization"`
}

type VolunteerStats struct {
	TotalVolunteers  int `json:"total_volunteers"`
	ActiveVolunteers int `json:"active_volunteers"`
	TotalHours       int `json:"total_hours"`
	TotalVisits      int `json:"total_visits"`
	SeniorCount      int `json:"senior_count"`
	EmployeeCount    int `json:"employee_count"`
}

// HouseholdListStats summarises a filtered household list.
type HouseholdListStats struct {
	Total       int `json:"total"`
	Critical    int `json:"critical"`
	High        int `json:"high"`
	Unconfirmed int `json:"unconfirmed"`
}

type Recommendation struct {
	Program WelfareProgram `json:"program"`
	Score   float64        `json:"score"`
	Reasons []ScoreReason  `json:"reasons"`
}

type ScoreReason struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Impact  float64 `json:"impact"`
}
