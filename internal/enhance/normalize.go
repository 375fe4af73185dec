package enhance

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type contraction struct {
	pattern     *regexp.Regexp
	replacement string
}

// Specific forms come before the generic suffix rules.
var contractions = []contraction{
	{regexp.MustCompile(`(?i)\bcan't\b`), "cannot"},
	{regexp.MustCompile(`(?i)\bwon't\b`), "will not"},
	{regexp.MustCompile(`(?i)\bshan't\b`), "shall not"},
	{regexp.MustCompile(`(?i)\bain't\b`), "is not"},
	{regexp.MustCompile(`(?i)\blet's\b`), "let us"},
	{regexp.MustCompile(`(?i)\by'all\b`), "you all"},
	{regexp.MustCompile(`(?i)\bi'm\b`), "I am"},
	{regexp.MustCompile(`(?i)\b(it|that|what|there|here|he|she|who|where|how|when|why)'s\b`), "${1} is"},
	{regexp.MustCompile(`(?i)\b(\w+)n't\b`), "${1} not"},
	{regexp.MustCompile(`(?i)\b(\w+)'re\b`), "${1} are"},
	{regexp.MustCompile(`(?i)\b(\w+)'ve\b`), "${1} have"},
	{regexp.MustCompile(`(?i)\b(\w+)'ll\b`), "${1} will"},
	{regexp.MustCompile(`(?i)\b(\w+)'d\b`), "${1} would"},
}

var (
	quoteReplacer   = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`, "…", "...")
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	ellipsisPattern = regexp.MustCompile(`\.{2,}`)
	sentenceGap     = regexp.MustCompile(`([.!?])\s*([A-Za-z])`)
	sentenceStart   = regexp.MustCompile(`(^|[.!?]\s+)(\p{Ll})`)
)

// Normalize cleans one block of subtitle text: Unicode NFC with typographic
// quotes folded, markup tags removed, contractions expanded, whitespace
// collapsed, ellipses and dashes unified, one space after sentence
// punctuation, and a capital letter at each sentence start. An empty result
// yields the original text.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	out := norm.NFC.String(text)
	out = quoteReplacer.Replace(out)
	out = tagPattern.ReplaceAllString(out, "")
	out = expandContractions(out)
	out = strings.Join(strings.FieldsFunc(out, unicode.IsSpace), " ")
	out = ellipsisPattern.ReplaceAllString(out, "...")
	out = strings.ReplaceAll(out, "--", "—")
	out = sentenceGap.ReplaceAllString(out, "${1} ${2}")
	out = capitalizeSentences(out)
	out = strings.TrimSpace(out)

	if out == "" {
		return text
	}
	return out
}

func expandContractions(text string) string {
	for _, c := range contractions {
		text = c.pattern.ReplaceAllStringFunc(text, func(match string) string {
			expanded := c.pattern.ReplaceAllString(match, c.replacement)
			return matchLeadingCase(match, expanded)
		})
	}
	return text
}

// matchLeadingCase capitalizes expanded when the original started with a
// capital ("Can't" becomes "Cannot").
func matchLeadingCase(original, expanded string) string {
	first, _ := utf8.DecodeRuneInString(original)
	if !unicode.IsUpper(first) {
		return expanded
	}
	r, size := utf8.DecodeRuneInString(expanded)
	return string(unicode.ToUpper(r)) + expanded[size:]
}

func capitalizeSentences(text string) string {
	caser := cases.Title(textlang.English, cases.NoLower)
	return sentenceStart.ReplaceAllStringFunc(text, func(match string) string {
		r, size := utf8.DecodeLastRuneInString(match)
		return match[:len(match)-size] + caser.String(string(r))
	})
}
