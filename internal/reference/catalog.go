package reference

import "github.com/yonghwan1106/e-ansimcare/internal/domain"

// Programs returns a fresh copy of the authored welfare program catalog.
func Programs() []domain.WelfareProgram {
	return []domain.WelfareProgram{
		{
			ID:                   "K001",
			Name:                 "연탄 나눔",
			Category:             domain.CategoryHeating,
			Description:          "저소득 가구에 연탄을 지원하여 겨울철 난방비 부담을 경감합니다.",
			Provider:             "한국수력원자력",
			Status:               domain.ProgramActive,
			Budget:               500000000,
			CurrentBeneficiaries: 245,
			MaxBeneficiaries:     500,
			SupportAmount:        600000,
			StartDate:            domain.MustDate("2024-10-01"),
			EndDate:              domain.MustDate("2025-03-31"),
			Eligibility:          []string{TagBasicLivelihood, TagNearPoverty, TagLivingAloneElderly, "장애인"},
			RequiredDocuments:    []string{"수급자증명서", "주민등록등본"},
		},
		{
			ID:                   "K002",
			Name:                 "난방유 나눔",
			Category:             domain.CategoryHeating,
			Description:          "농어촌 지역 저소득 가구에 난방유를 지원합니다.",
			Provider:             "한국수력원자력",
			Status:               domain.ProgramActive,
			Budget:               400000000,
			CurrentBeneficiaries: 156,
			MaxBeneficiaries:     520,
			SupportAmount:        800000,
			StartDate:            domain.MustDate("2024-11-01"),
			EndDate:              domain.MustDate("2025-02-28"),
			Eligibility:          []string{TagBasicLivelihood, TagNearPoverty, "농어촌 거주"},
			RequiredDocuments:    []string{"수급자증명서", "주민등록등본", "난방유 사용 증빙"},
		},
		{
			ID:                   "K003",
			Name:                 "E-안심하우스",
			Category:             domain.CategoryHousing,
			Description:          "노후 주택의 에너지 효율을 개선하는 주거 환경 개선 사업입니다.",
			Provider:             "한국수력원자력",
			Status:               domain.ProgramActive,
			Budget:               1000000000,
			CurrentBeneficiaries: 89,
			MaxBeneficiaries:     200,
			SupportAmount:        2000000,
			StartDate:            domain.MustDate("2024-01-01"),
			EndDate:              domain.MustDate("2024-12-31"),
			Eligibility:          []string{TagBasicLivelihood, TagNearPoverty, "노후주택 거주"},
			RequiredDocuments:    []string{"수급자증명서", "주민등록등본", "주택 노후화 사진"},
		},
		{
			ID:                   "K004",
			Name:                 "냉방비 지원",
			Category:             domain.CategoryCooling,
			Description:          "혹서기 취약가구의 전기요금을 지원합니다.",
			Provider:             "한국수력원자력",
			Status:               domain.ProgramEnded,
			Budget:               200000000,
			CurrentBeneficiaries: 134,
			MaxBeneficiaries:     300,
			SupportAmount:        100000,
			StartDate:            domain.MustDate("2024-06-01"),
			EndDate:              domain.MustDate("2024-08-31"),
			Eligibility:          []string{TagBasicLivelihood, TagNearPoverty, TagLivingAloneElderly, "장애인"},
			RequiredDocuments:    []string{"수급자증명서", "전기요금 고지서"},
		},
		{
			ID:                   "K005",
			Name:                 "방한용품 지원",
			Category:             domain.CategoryHeating,
			Description:          "혹한기 취약가구에 난방용품 세트를 지원합니다.",
			Provider:             "한국수력원자력",
			Status:               domain.ProgramActive,
			Budget:               300000000,
			CurrentBeneficiaries: 178,
			MaxBeneficiaries:     300,
			SupportAmount:        1000000,
			StartDate:            domain.MustDate("2024-11-01"),
			EndDate:              domain.MustDate("2025-01-31"),
			Eligibility:          []string{TagBasicLivelihood, TagNearPoverty, TagLivingAloneElderly},
			RequiredDocuments:    []string{"수급자증명서", "주민등록등본"},
		},
		{
			ID:                   "G001",
			Name:                 "에너지바우처",
			Category:             domain.CategoryVoucher,
			Description:          "저소득층의 전기, 가스, 난방 비용을 지원하는 정부 사업입니다.",
			Provider:             "산업통상자원부",
			Status:               domain.ProgramActive,
			Budget:               5000000000,
			CurrentBeneficiaries: 3120,
			MaxBeneficiaries:     10000,
			SupportAmount:        295200,
			StartDate:            domain.MustDate("2024-01-01"),
			EndDate:              domain.MustDate("2024-12-31"),
			Eligibility:          []string{TagBasicLivelihood, "노인", "장애인", "영유아", "임산부"},
			RequiredDocuments:    []string{"수급자증명서", "주민등록등본", "가구원특성 증빙"},
		},
		{
			ID:                   "G002",
			Name:                 "긴급복지지원",
			Category:             domain.CategoryEmergency,
			Description:          "위기상황에 처한 저소득층에게 생계비, 의료비 등을 긴급 지원합니다.",
			Provider:             "보건복지부",
			Status:               domain.ProgramActive,
			Budget:               3000000000,
			CurrentBeneficiaries: 856,
			MaxBeneficiaries:     5000,
			SupportAmount:        1620000,
			StartDate:            domain.MustDate("2024-01-01"),
			EndDate:              domain.MustDate("2024-12-31"),
			Eligibility:          []string{"위기가구", TagBasicLivelihood, TagNearPoverty},
			RequiredDocuments:    []string{"위기상황 증빙", "소득재산 증빙"},
		},
		{
			ID:                   "G003",
			Name:                 "기초생활보장",
			Category:             domain.CategoryEmergency,
			Description:          "생활이 어려운 국민에게 생계, 의료, 주거, 교육 급여를 지원합니다.",
			Provider:             "보건복지부",
			Status:               domain.ProgramActive,
			Budget:               10000000000,
			CurrentBeneficiaries: 5430,
			MaxBeneficiaries:     20000,
			SupportAmount:        500000,
			StartDate:            domain.MustDate("2024-01-01"),
			EndDate:              domain.MustDate("2024-12-31"),
			Eligibility:          []string{"기초수급 대상"},
			RequiredDocuments:    []string{"소득재산 증빙", "가족관계증명서"},
		},
		{
			ID:                   "L001",
			Name:                 "서울시 에너지취약계층 지원",
			Category:             domain.CategoryHeating,
			Description:          "서울시 거주 에너지 취약계층에게 난방비를 추가 지원합니다.",
			Provider:             "서울특별시",
			Status:               domain.ProgramActive,
			Budget:               800000000,
			CurrentBeneficiaries: 456,
			MaxBeneficiaries:     1000,
			SupportAmount:        200000,
			StartDate:            domain.MustDate("2024-11-01"),
			EndDate:              domain.MustDate("2025-03-31"),
			Eligibility:          []string{TagBasicLivelihood, TagNearPoverty, "서울 거주"},
			RequiredDocuments:    []string{"수급자증명서", "주민등록등본"},
		},
		{
			ID:                   "L002",
			Name:                 "경북 사랑의 연탄나눔",
			Category:             domain.CategoryHeating,
			Description:          "경상북도 저소득층에게 연탄을 지원합니다.",
			Provider:             "경상북도",
			Status:               domain.ProgramUpcoming,
			Budget:               200000000,
			CurrentBeneficiaries: 0,
			MaxBeneficiaries:     400,
			SupportAmount:        400000,
			StartDate:            domain.MustDate("2025-01-01"),
			EndDate:              domain.MustDate("2025-02-28"),
			Eligibility:          []string{TagBasicLivelihood, TagNearPoverty, "경북 거주"},
			RequiredDocuments:    []string{"수급자증명서", "주민등록등본"},
		},
	}
}

// SupportOffering is what a household's support record says it received.
type SupportOffering struct {
	ProgramID   string
	ProgramName string
	Amount      string
}

// SupportOfferings are the programs support records are drawn from.
var SupportOfferings = []SupportOffering{
	{"K001", "연탄 나눔", "연탄 1,500장"},
	{"K002", "난방유 나눔", "난방유 300L"},
	{"K003", "E-안심하우스", "창호 교체"},
	{"K004", "냉방비 지원", "50,000원"},
	{"K005", "방한용품 지원", "난방용품 세트"},
	{"G001", "에너지바우처", "295,200원"},
	{"G002", "긴급복지지원", "생계비 지원"},
}

type AlertTemplate struct {
	Type     domain.AlertType
	Priority domain.Priority
	Title    string
	// Suffix is appended to "sigungu dong" when Household is set.
	Suffix    string
	Household bool
}

var AlertTemplates = []AlertTemplate{
	{domain.AlertAIDetection, domain.PriorityHigh, "고위험 가구 발굴", "에서 고위험 가구가 새로 발굴되었습니다.", true},
	{domain.AlertAIDetection, domain.PriorityMedium, "중위험 가구 발굴", "에서 중위험 가구가 발굴되었습니다.", true},
	{domain.AlertUrgent, domain.PriorityCritical, "긴급 지원 필요", " 가구에서 긴급 지원 요청이 접수되었습니다.", true},
	{domain.AlertVolunteer, domain.PriorityMedium, "방문 일정 알림", "의 방문 예정일입니다.", true},
	{domain.AlertWelfare, domain.PriorityLow, "복지 연계 완료", " 가구의 복지 서비스 연계가 완료되었습니다.", true},
	{domain.AlertSystem, domain.PriorityLow, "시스템 알림", "주간 리포트가 생성되었습니다.", false},
}
