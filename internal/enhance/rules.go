package enhance

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Sense is one candidate reading of an ambiguous trigger. A sense with no
// intents applies to any intent.
type Sense struct {
	Intents   []string
	Hint      string
	WithScore bool
}

func (s Sense) matches(intent string) bool {
	if len(s.Intents) == 0 {
		return true
	}
	for _, candidate := range s.Intents {
		if candidate == intent {
			return true
		}
	}
	return false
}

// Rule maps a trigger pattern to its senses in priority order.
type Rule struct {
	Name    string
	Trigger *regexp.Regexp
	Senses  []Sense
}

// DisambiguationRules are evaluated in order; every rule whose trigger occurs
// in the text contributes, and within a rule the first matching sense wins.
var DisambiguationRules = []Rule{
	{
		Name:    "great",
		Trigger: regexp.MustCompile(`(?i)\bgreat\b`),
		Senses: []Sense{
			{Intents: []string{IntentSize}, Hint: "big", WithScore: true},
			{Hint: "excellent", WithScore: true},
		},
	},
	{
		Name:    "cool",
		Trigger: regexp.MustCompile(`(?i)\bcool\b`),
		Senses: []Sense{
			{Intents: []string{IntentTemperature}, Hint: "cold", WithScore: true},
			{Hint: "good", WithScore: true},
		},
	},
	{
		Name:    "bloody",
		Trigger: regexp.MustCompile(`(?i)\bbloody\b`),
		Senses:  []Sense{{Intents: []string{IntentFrustration}, Hint: "british_expression:frustration"}},
	},
	{
		Name:    "dirt",
		Trigger: regexp.MustCompile(`(?i)\bdirt\b`),
		Senses:  []Sense{{Intents: []string{IntentFindSecrets}, Hint: "compromising_information"}},
	},
	{
		Name:    "back off",
		Trigger: regexp.MustCompile(`(?i)\bback off\b`),
		Senses:  []Sense{{Intents: []string{IntentWithdraw}, Hint: "withdraw/retreat"}},
	},
	{
		Name:    "ruin",
		Trigger: regexp.MustCompile(`(?i)\bruin\b`),
		Senses:  []Sense{{Intents: []string{IntentHarm}, Hint: "destroy_reputation"}},
	},
}

const expressionIntentPrefix = "expression."

// applyRules annotates every trigger occurrence in text with the hint of the
// first sense matching c.Intent. The matched text keeps its casing.
func applyRules(text string, c Classification, rules []Rule) string {
	percent := int(math.Round(c.Score * 100))
	for _, rule := range rules {
		if !rule.Trigger.MatchString(text) {
			continue
		}
		for _, sense := range rule.Senses {
			if !sense.matches(c.Intent) {
				continue
			}
			hint := sense.Hint
			if sense.WithScore {
				hint = fmt.Sprintf("%s:%d%%", hint, percent)
			}
			text = rule.Trigger.ReplaceAllString(text, "${0}["+hint+"]")
			break
		}
	}
	return text
}

// expressionSuffix returns the tag appended to a block classified as a
// colloquial expression ("greeting" for expression.greeting).
func expressionSuffix(intent string) (string, bool) {
	if !strings.HasPrefix(intent, expressionIntentPrefix) {
		return "", false
	}
	suffix := strings.TrimPrefix(intent, expressionIntentPrefix)
	return suffix, suffix != ""
}
