package matching

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the recommendation rule table. Scores start at Base and collect
// fixed bonuses; the result is clamped to 0..100.
type Rules struct {
	Base float64 `yaml:"base" json:"base"`

	// HeatingPrograms maps a household heating type to the program it favours.
	HeatingPrograms map[string]string `yaml:"heating_programs" json:"heating_programs"`
	HeatingBonus    float64           `yaml:"heating_bonus" json:"heating_bonus"`

	ElderlyTag   string  `yaml:"elderly_tag" json:"elderly_tag"`
	ElderlyBonus float64 `yaml:"elderly_bonus" json:"elderly_bonus"`

	// IncomeTags earn IncomeBonus when both household and program carry one.
	IncomeTags  []string `yaml:"income_tags" json:"income_tags"`
	IncomeBonus float64  `yaml:"income_bonus" json:"income_bonus"`

	TopK int `yaml:"top_k" json:"top_k"`
}

// DefaultRules returns the stock rule table.
func DefaultRules() Rules {
	return Rules{
		Base: 50,
		HeatingPrograms: map[string]string{
			"연탄":    "K001",
			"기름보일러": "K002",
		},
		HeatingBonus: 40,
		ElderlyTag:   "독거노인",
		ElderlyBonus: 10,
		IncomeTags:   []string{"기초수급"},
		IncomeBonus:  20,
		TopK:         3,
	}
}

// LoadRulesFromFile reads YAML (or JSON) rules over the defaults. A
// heating_programs table in the file replaces the default one whole. On error
// the defaults are returned alongside it.
func LoadRulesFromFile(path string) (Rules, error) {
	r := DefaultRules()
	b, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("read rules file: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return DefaultRules(), fmt.Errorf("unmarshal rules: %w", err)
	}
	if len(doc.Content) > 0 {
		root := doc.Content[0]
		if hasKey(root, "heating_programs") {
			// decoding into a non-nil map merges keys
			r.HeatingPrograms = nil
		}
		if err := root.Decode(&r); err != nil {
			return DefaultRules(), fmt.Errorf("unmarshal rules: %w", err)
		}
	}
	if r.TopK <= 0 {
		r.TopK = DefaultRules().TopK
	}
	return r, nil
}

func hasKey(n *yaml.Node, key string) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}
