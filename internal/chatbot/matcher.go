package chatbot

import "strings"

type keywordGroup struct {
	key      NodeKey
	keywords []string
}

// groups are checked in order; crisis wording wins over routine service words.
var groups = []keywordGroup{
	{NodeEmergency, []string{"긴급", "살려", "응급", "위급", "119", "sos"}},
	{NodeVoucherApply, []string{"에너지바우처", "바우처"}},
	{NodeHeatingSupport, []string{"난방", "연탄", "난방유"}},
	{NodeCoolingSupport, []string{"냉방", "에어컨", "선풍기"}},
	{NodeHousingSupport, []string{"주거", "집", "안심하우스"}},
	{NodeConnectAgent, []string{"상담", "전화", "연결"}},
	{NodeWelfareInfo, []string{"복지", "지원", "도움"}},
}

// Match maps free text to a node key, NodeDefault when nothing matches.
func Match(text string) NodeKey {
	q := strings.ToLower(text)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(q, kw) {
				return g.key
			}
		}
	}
	return NodeDefault
}
