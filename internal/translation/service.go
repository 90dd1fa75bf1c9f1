package translation

import "context"

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
	SupportedLanguages() []string
}

// Detector identifies the language of free-form text. Providers implement it
// when their backend exposes detection.
type Detector interface {
	Detect(ctx context.Context, text string) (*DetectResponse, error)
}

// TranslateRequest describes one translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // ISO 639-1 or a regional tag (for example: "en", "zh-cn"); empty means auto
	TargetLang string
	Pronounce  bool
}

// TranslateResponse contains translated text and provider metadata. A
// provider fills either Text or Candidates; Candidates carries the backend's
// two readings of an ambiguous source.
type TranslateResponse struct {
	Text                string
	Candidates          []string
	SourcePronunciation *string
	TargetPronunciation *string
	SourceLang          string
	TargetLang          string
	ProviderName        string
	LatencyMs           int64
}

// DetectResponse names a detected language.
type DetectResponse struct {
	Code         string
	Name         string
	ProviderName string
}
