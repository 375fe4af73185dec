package language

import (
	"sort"
	"strings"
)

// Auto is the pseudo-code that asks the translation service to detect the
// source language.
const Auto = "auto"

type entry struct {
	code  string // canonical code as sent to the translation service
	label string // human-readable name
}

var languages = []entry{
	{"auto", "Detect language"},
	{"af", "Afrikaans"},
	{"sq", "Albanian"},
	{"am", "Amharic"},
	{"ar", "Arabic"},
	{"hy", "Armenian"},
	{"as", "Assamese"},
	{"ay", "Aymara"},
	{"az", "Azerbaijani"},
	{"bm", "Bambara"},
	{"eu", "Basque"},
	{"be", "Belarusian"},
	{"bn", "Bengali"},
	{"bho", "Bhojpuri"},
	{"bs", "Bosnian"},
	{"bg", "Bulgarian"},
	{"ca", "Catalan"},
	{"ceb", "Cebuano"},
	{"ny", "Chichewa"},
	{"zh-CN", "Chinese (Simplified)"},
	{"zh-TW", "Chinese (Traditional)"},
	{"co", "Corsican"},
	{"hr", "Croatian"},
	{"cs", "Czech"},
	{"da", "Danish"},
	{"dv", "Dhivehi"},
	{"doi", "Dogri"},
	{"nl", "Dutch"},
	{"en", "English"},
	{"eo", "Esperanto"},
	{"et", "Estonian"},
	{"ee", "Ewe"},
	{"tl", "Filipino"},
	{"fi", "Finnish"},
	{"fr", "French"},
	{"fy", "Frisian"},
	{"gl", "Galician"},
	{"ka", "Georgian"},
	{"de", "German"},
	{"el", "Greek"},
	{"gn", "Guarani"},
	{"gu", "Gujarati"},
	{"ht", "Haitian Creole"},
	{"ha", "Hausa"},
	{"haw", "Hawaiian"},
	{"iw", "Hebrew"},
	{"hi", "Hindi"},
	{"hmn", "Hmong"},
	{"hu", "Hungarian"},
	{"is", "Icelandic"},
	{"ig", "Igbo"},
	{"ilo", "Ilocano"},
	{"id", "Indonesian"},
	{"ga", "Irish"},
	{"it", "Italian"},
	{"ja", "Japanese"},
	{"jw", "Javanese"},
	{"kn", "Kannada"},
	{"kk", "Kazakh"},
	{"km", "Khmer"},
	{"rw", "Kinyarwanda"},
	{"gom", "Konkani"},
	{"ko", "Korean"},
	{"kri", "Krio"},
	{"ku", "Kurdish (Kurmanji)"},
	{"ckb", "Kurdish (Sorani)"},
	{"ky", "Kyrgyz"},
	{"lo", "Lao"},
	{"la", "Latin"},
	{"lv", "Latvian"},
	{"ln", "Lingala"},
	{"lt", "Lithuanian"},
	{"lg", "Luganda"},
	{"lb", "Luxembourgish"},
	{"mk", "Macedonian"},
	{"mai", "Maithili"},
	{"mg", "Malagasy"},
	{"ms", "Malay"},
	{"ml", "Malayalam"},
	{"mt", "Maltese"},
	{"mi", "Maori"},
	{"mr", "Marathi"},
	{"mni-Mtei", "Meiteilon (Manipuri)"},
	{"lus", "Mizo"},
	{"mn", "Mongolian"},
	{"my", "Myanmar (Burmese)"},
	{"ne", "Nepali"},
	{"no", "Norwegian"},
	{"or", "Odia (Oriya)"},
	{"om", "Oromo"},
	{"ps", "Pashto"},
	{"fa", "Persian"},
	{"pl", "Polish"},
	{"pt", "Portuguese"},
	{"pa", "Punjabi"},
	{"qu", "Quechua"},
	{"ro", "Romanian"},
	{"ru", "Russian"},
	{"sm", "Samoan"},
	{"sa", "Sanskrit"},
	{"gd", "Scots Gaelic"},
	{"nso", "Sepedi"},
	{"sr", "Serbian"},
	{"st", "Sesotho"},
	{"sn", "Shona"},
	{"sd", "Sindhi"},
	{"si", "Sinhala"},
	{"sk", "Slovak"},
	{"sl", "Slovenian"},
	{"so", "Somali"},
	{"es", "Spanish"},
	{"su", "Sundanese"},
	{"sw", "Swahili"},
	{"sv", "Swedish"},
	{"tg", "Tajik"},
	{"ta", "Tamil"},
	{"tt", "Tatar"},
	{"te", "Telugu"},
	{"th", "Thai"},
	{"ti", "Tigrinya"},
	{"ts", "Tsonga"},
	{"tr", "Turkish"},
	{"tk", "Turkmen"},
	{"ak", "Twi"},
	{"uk", "Ukrainian"},
	{"ur", "Urdu"},
	{"ug", "Uyghur"},
	{"uz", "Uzbek"},
	{"vi", "Vietnamese"},
	{"cy", "Welsh"},
	{"xh", "Xhosa"},
	{"yi", "Yiddish"},
	{"yo", "Yoruba"},
	{"zu", "Zulu"},
}

// aliases maps DeepL-style and regional codes onto table codes.
var aliases = map[string]string{
	"nb":      "no",
	"zh":      "zh-CN",
	"zh-hans": "zh-CN",
	"zh-hant": "zh-TW",
	"en-us":   "en",
	"en-gb":   "en",
	"pt-br":   "pt",
	"pt-pt":   "pt",
	"he":      "iw",
}

// Index maps built at init time, keyed by lowercase code.
var byCode map[string]*entry

func init() {
	byCode = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode[strings.ToLower(e.code)] = e
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode[code]; ok {
		return e
	}
	if target, ok := aliases[code]; ok {
		return byCode[strings.ToLower(target)]
	}
	return nil
}

// Language is one row of the supported language table.
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Resolve returns the canonical table code for code, accepting any casing and
// the known aliases. The second result is false for unsupported input.
func Resolve(code string) (string, bool) {
	if e := lookup(code); e != nil {
		return e.code, true
	}
	return "", false
}

// IsSupported reports whether code (or one of its aliases) is in the table.
func IsSupported(code string) bool {
	return lookup(code) != nil
}

// ResolvePair validates a source/target pair. Auto-detection is only
// meaningful for the source side.
func ResolvePair(source, target string) (string, string, error) {
	src, ok := Resolve(source)
	if !ok {
		return "", "", &UnsupportedError{Code: source, Role: "source"}
	}
	tgt, ok := Resolve(target)
	if !ok || tgt == Auto {
		return "", "", &UnsupportedError{Code: target, Role: "target"}
	}
	return src, tgt, nil
}

// Label returns the display label for a code, or the trimmed code itself when
// it is not in the table.
func Label(code string) string {
	if e := lookup(code); e != nil {
		return e.label
	}
	return strings.TrimSpace(code)
}

// All returns the table in display order (auto first, then by label).
func All() []Language {
	out := make([]Language, 0, len(languages))
	for _, e := range languages {
		out = append(out, Language{Code: e.code, Label: e.label})
	}
	rest := out[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Label < rest[j].Label
	})
	return out
}

// UnsupportedError reports a language code outside the fixed table.
type UnsupportedError struct {
	Code string
	Role string
}

func (e *UnsupportedError) Error() string {
	code := strings.TrimSpace(e.Code)
	if code == "" {
		return "missing " + e.Role + " language code"
	}
	return "unsupported " + e.Role + " language code \"" + code + "\""
}
