package services

// Translation is the outcome of translating one piece of text.
// SourceLanguage is a display label for the detected or requested language.
type Translation struct {
	SourceLanguage string `json:"sourceLanguage"`
	Text           string `json:"text"`
}
