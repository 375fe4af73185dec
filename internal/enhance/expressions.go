package enhance

import "regexp"

type expression struct {
	pattern *regexp.Regexp
	meaning string
}

// Patterns accept both the contracted and the expanded form.
var expressions = []expression{
	{regexp.MustCompile(`(?i)\bwhat(?:'s| is) up\b`), "greeting"},
	{regexp.MustCompile(`(?i)\bhow(?:'s| is) it going\b`), "greeting"},
	{regexp.MustCompile(`(?i)\byou bet\b`), "agreement"},
	{regexp.MustCompile(`(?i)\bno way\b`), "disbelief"},
	{regexp.MustCompile(`(?i)\bcome on\b`), "encouragement"},
	{regexp.MustCompile(`(?i)\bgot it\b`), "understanding"},
}

// hasExpression reports whether text contains any known expression.
func hasExpression(text string) bool {
	for _, e := range expressions {
		if e.pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// markExpressions tags each known expression as phrase[meaning].
func markExpressions(text string) string {
	for _, e := range expressions {
		text = e.pattern.ReplaceAllString(text, "${0}["+e.meaning+"]")
	}
	return text
}
