// Package chatbot is the scripted counselling bot: a keyword intent matcher
// over a fixed set of response nodes, plus per-conversation sessions.
package chatbot

import "slices"

// NodeKey names a response node.
type NodeKey string

const (
	NodeGreeting       NodeKey = "greeting"
	NodeEmergency      NodeKey = "emergency"
	NodeWelfareInfo    NodeKey = "welfare_info"
	NodeVoucherApply   NodeKey = "voucher_apply"
	NodeHeatingSupport NodeKey = "heating_support"
	NodeCoolingSupport NodeKey = "cooling_support"
	NodeHousingSupport NodeKey = "housing_support"
	NodeConnectAgent   NodeKey = "connect_agent"
	NodeDefault        NodeKey = "default"

	NodeVoucherCheck    NodeKey = "voucher_check"
	NodeHeatingApply    NodeKey = "heating_apply"
	NodeHousingApply    NodeKey = "housing_apply"
	NodeRequestHelp     NodeKey = "request_help"
	NodeCoalApply       NodeKey = "coal_apply"
	NodeHeatingOilApply NodeKey = "heating_oil_apply"
	NodeGasDiscount     NodeKey = "gas_discount"
	NodeCoolingApply    NodeKey = "cooling_apply"
	NodeACApply         NodeKey = "ac_apply"
	NodeShelterFind     NodeKey = "shelter_find"
	NodeHouseApply      NodeKey = "house_apply"
	NodeHouseCases      NodeKey = "house_cases"
	NodeCallNow         NodeKey = "call_now"
	NodeCallback        NodeKey = "callback"
	NodeSMSConsult      NodeKey = "sms_consult"
)

type Option struct {
	Label string  `json:"label"`
	Value NodeKey `json:"value"`
}

type Node struct {
	Key     NodeKey  `json:"key"`
	Content string   `json:"content"`
	Options []Option `json:"options,omitempty"`
}

// Terminal nodes have no follow-up options.
func (n Node) Terminal() bool { return len(n.Options) == 0 }

// quickActions are the menu entries; the greeting shows the first four.
var quickActions = []Option{
	{"복지사업 안내", NodeWelfareInfo},
	{"에너지바우처 신청", NodeVoucherApply},
	{"난방비 지원", NodeHeatingSupport},
	{"냉방비 지원", NodeCoolingSupport},
	{"주거개선 지원", NodeHousingSupport},
	{"상담원 연결", NodeConnectAgent},
}

var nodes = []Node{
	{
		Key: NodeGreeting,
		Content: `안녕하세요! 👋 E-안심케어 AI 상담 도우미입니다.

에너지 복지서비스 관련 궁금하신 점을 물어봐 주세요.
24시간 언제든 도움을 드릴게요!

아래 버튼을 누르거나 직접 질문을 입력해주세요.`,
		Options: quickActions[:4:4],
	},
	{
		Key: NodeEmergency,
		Content: `긴급 상황으로 확인되었습니다. 🚨

**생명이 위급한 경우 지금 바로 119에 연락해 주세요.**

- 긴급 복지 상담: 129 (24시간)
- 한수원 고객센터: 1588-0000

담당 복지사에게 긴급 알림을 전달할 수 있습니다.`,
		Options: []Option{
			{"지금 연결하기", NodeCallNow},
			{"긴급 지원 요청", NodeRequestHelp},
		},
	},
	{
		Key: NodeWelfareInfo,
		Content: `안녕하세요! E-안심케어 복지서비스 안내입니다. 😊

현재 이용 가능한 복지사업을 안내해 드릴게요:

🔥 **난방 지원**
- 연탄 나눔: 저소득 가구 대상 연탄 지원
- 난방유 지원: 유류비 지원 (최대 50만원)

❄️ **냉방 지원**
- 혹서기 냉방비: 여름철 전기요금 지원
- 선풍기/에어컨 지원

🏠 **주거개선**
- E-안심하우스: 노후주택 전기설비 무료 교체
- 단열 개선 지원

💳 **에너지바우처**
- 정부 에너지바우처 대상자 확인 및 신청 지원

어떤 사업에 대해 자세히 알고 싶으신가요?`,
		Options: []Option{
			{"에너지바우처 자격 확인", NodeVoucherCheck},
			{"난방비 지원 신청", NodeHeatingApply},
			{"주거개선 신청", NodeHousingApply},
		},
	},
	{
		Key: NodeVoucherApply,
		Content: `에너지바우처 신청 안내입니다. 📋

**에너지바우처란?**
저소득층의 난방비 부담을 줄이기 위해 정부가 지원하는 바우처입니다.

**지원 대상**
- 기초생활수급자 (생계·의료·주거·교육급여 수급자)
- 차상위계층
- 위 대상 중 노인, 영유아, 장애인, 임산부 등이 포함된 가구

**지원 금액** (2024년 기준)
- 1인 가구: 122,200원
- 2인 가구: 152,000원
- 3인 이상: 185,500원

**신청 방법**
1. 주민센터 방문 신청
2. 복지로(bokjiro.go.kr) 온라인 신청
3. E-안심케어 앱을 통한 대리 신청

자격 확인을 도와드릴까요?`,
		Options: []Option{
			{"자격 확인하기", NodeVoucherCheck},
			{"신청 대행 요청", NodeRequestHelp},
			{"다른 복지사업 보기", NodeWelfareInfo},
		},
	},
	{
		Key: NodeHeatingSupport,
		Content: `난방비 지원 안내입니다. 🔥

**1. 연탄 나눔 사업**
- 대상: 저소득 독거노인, 기초생활수급자
- 내용: 연탄 1,000장 이내 무료 지원
- 신청: 주민센터 또는 한수원 고객센터

**2. 난방유 지원**
- 대상: 기초생활수급자, 차상위계층
- 지원금: 가구당 최대 50만원
- 기간: 매년 11월~익년 3월

**3. 도시가스 절감 요금 할인**
- 대상: 기초생활수급자, 차상위계층
- 혜택: 최대 36,000원/월 할인

신청을 도와드릴까요?`,
		Options: []Option{
			{"연탄 나눔 신청", NodeCoalApply},
			{"난방유 지원 신청", NodeHeatingOilApply},
			{"가스요금 할인 신청", NodeGasDiscount},
		},
	},
	{
		Key: NodeCoolingSupport,
		Content: `냉방비 지원 안내입니다. ❄️

**1. 혹서기 냉방비 지원**
- 대상: 기초생활수급자, 차상위계층
- 지원금: 가구당 최대 20만원
- 기간: 매년 7월~8월

**2. 에어컨 지원**
- 대상: 취약계층 중 에어컨 미보유 가구
- 내용: 에어컨 설치 및 전기요금 지원

**3. 무더위쉼터 안내**
- 전국 무더위쉼터 위치 안내
- 가까운 쉼터 찾기 서비스

도움이 필요하신 사항을 선택해주세요.`,
		Options: []Option{
			{"냉방비 지원 신청", NodeCoolingApply},
			{"에어컨 지원 신청", NodeACApply},
			{"무더위쉼터 찾기", NodeShelterFind},
		},
	},
	{
		Key: NodeHousingSupport,
		Content: `주거개선 지원 안내입니다. 🏠

**E-안심하우스 사업**
한수원에서 운영하는 무료 주거개선 사업입니다.

**지원 내용**
- 노후 전기배선 교체
- LED 조명 설치
- 누전차단기 설치
- 전기화재 예방 점검

**지원 대상**
- 기초생활수급자
- 차상위계층
- 독거노인 가구
- 장애인 가구

**신청 방법**
1. 한수원 고객센터 (1588-0000)
2. E-안심케어 앱
3. 주민센터 연계

신청을 도와드릴까요?`,
		Options: []Option{
			{"E-안심하우스 신청", NodeHouseApply},
			{"시공 사례 보기", NodeHouseCases},
			{"다른 지원 보기", NodeWelfareInfo},
		},
	},
	{
		Key: NodeConnectAgent,
		Content: `상담원 연결을 원하시는군요. 📞

**상담 가능 시간**
- 평일: 09:00 ~ 18:00
- 토요일: 09:00 ~ 13:00
- 일요일/공휴일: 휴무

**연락처**
- 한수원 고객센터: 1588-0000
- 긴급 복지 상담: 129
- 에너지바우처 문의: 1600-3190

지금 바로 상담원 연결을 요청하시겠습니까?

(근무시간 외에는 콜백 예약이 가능합니다)`,
		Options: []Option{
			{"지금 연결하기", NodeCallNow},
			{"콜백 예약하기", NodeCallback},
			{"문자 상담하기", NodeSMSConsult},
		},
	},
	{
		Key: NodeDefault,
		Content: `죄송합니다. 해당 질문에 대한 정확한 답변을 찾지 못했어요. 😅

다음 중 하나를 선택해주시면 도움을 드릴게요:`,
		Options: []Option{
			{"복지사업 안내", NodeWelfareInfo},
			{"에너지바우처", NodeVoucherApply},
			{"상담원 연결", NodeConnectAgent},
		},
	},

	{Key: NodeVoucherCheck, Content: "에너지바우처 자격 확인을 접수했습니다. 담당자가 수급 자격을 조회한 뒤 결과를 문자로 안내해 드립니다."},
	{Key: NodeHeatingApply, Content: "난방비 지원 신청이 접수되었습니다. 담당 복지사가 3일 이내에 연락드릴 예정입니다."},
	{Key: NodeHousingApply, Content: "주거개선 지원 신청이 접수되었습니다. 현장 점검 일정을 잡기 위해 연락드리겠습니다."},
	{Key: NodeRequestHelp, Content: "신청 대행 요청이 접수되었습니다. 담당 복지사가 방문 또는 전화로 서류 준비를 도와드립니다."},
	{Key: NodeCoalApply, Content: "연탄 나눔 신청이 접수되었습니다. 배달 가능 일정을 확인한 뒤 안내해 드리겠습니다."},
	{Key: NodeHeatingOilApply, Content: "난방유 지원 신청이 접수되었습니다. 수급자증명서와 주민등록등본을 준비해 주세요."},
	{Key: NodeGasDiscount, Content: "도시가스 요금 할인 신청이 접수되었습니다. 다음 달 고지서부터 할인이 적용됩니다."},
	{Key: NodeCoolingApply, Content: "냉방비 지원 신청이 접수되었습니다. 전기요금 고지서를 준비해 주세요."},
	{Key: NodeACApply, Content: "에어컨 지원 신청이 접수되었습니다. 설치 가능 여부 확인을 위해 방문 일정을 안내해 드리겠습니다."},
	{Key: NodeShelterFind, Content: "가까운 무더위쉼터는 주민센터와 경로당에서 운영됩니다. 위치 안내 문자를 보내 드리겠습니다."},
	{Key: NodeHouseApply, Content: "E-안심하우스 신청이 접수되었습니다. 한수원 담당자가 현장 점검 일정을 안내해 드립니다."},
	{Key: NodeHouseCases, Content: "E-안심하우스는 노후 배선 교체, LED 조명, 누전차단기 설치 사례가 가장 많습니다. 자세한 시공 사례는 상담원에게 문의해 주세요."},
	{Key: NodeCallNow, Content: "상담원 연결을 요청했습니다. 잠시만 기다려 주세요. 연결이 지연되면 1588-0000으로 전화해 주세요."},
	{Key: NodeCallback, Content: "콜백 예약이 완료되었습니다. 상담 가능 시간에 상담원이 먼저 연락드리겠습니다."},
	{Key: NodeSMSConsult, Content: "문자 상담이 시작되었습니다. 등록된 연락처로 상담 안내 문자가 발송됩니다."},
}

var nodeIndex = func() map[NodeKey]Node {
	m := make(map[NodeKey]Node, len(nodes))
	for _, n := range nodes {
		m[n.Key] = n
	}
	return m
}()

// QuickActions returns a copy of the full menu.
func QuickActions() []Option { return slices.Clone(quickActions) }

// Lookup returns the node for key.
func Lookup(key NodeKey) (Node, bool) {
	n, ok := nodeIndex[key]
	return n.clone(), ok
}

// Resolve is Lookup with the default node for unknown keys.
func Resolve(key NodeKey) Node {
	if n, ok := nodeIndex[key]; ok {
		return n.clone()
	}
	return nodeIndex[NodeDefault].clone()
}

// Nodes lists every node in declaration order.
func Nodes() []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.clone()
	}
	return out
}

func (n Node) clone() Node {
	n.Options = slices.Clone(n.Options)
	return n
}

// optionLabel finds the label a quick reply was shown with.
func optionLabel(value NodeKey) (string, bool) {
	for _, o := range quickActions {
		if o.Value == value {
			return o.Label, true
		}
	}
	for _, n := range nodes {
		for _, o := range n.Options {
			if o.Value == value {
				return o.Label, true
			}
		}
	}
	return "", false
}
