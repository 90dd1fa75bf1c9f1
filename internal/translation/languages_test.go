package translation

import (
	"sort"
	"testing"
)

type fixedLanguagesProvider struct {
	stubProvider
	languages []string
}

func (p *fixedLanguagesProvider) SupportedLanguages() []string {
	return p.languages
}

func TestLanguageOptions(t *testing.T) {
	t.Parallel()

	provider := &fixedLanguagesProvider{
		stubProvider: stubProvider{name: "stub"},
		languages:    []string{"EN", "tlh", ""},
	}
	registry := NewRegistry("stub")
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register provider: %v", err)
	}

	options := LanguageOptions(registry)
	if len(options) == 0 {
		t.Fatalf("expected language options")
	}
	if !sort.SliceIsSorted(options, func(i, j int) bool { return options[i].Code < options[j].Code }) {
		t.Fatalf("expected options sorted by code")
	}

	byCode := make(map[string]string, len(options))
	for _, option := range options {
		byCode[option.Code] = option.Label
	}

	if got := byCode["en"]; got != "english" {
		t.Fatalf("unexpected label for en: %q", got)
	}
	if got := byCode["zh-cn"]; got != "chinese (simplified)" {
		t.Fatalf("unexpected label for zh-cn: %q", got)
	}
	// Provider-only codes fall back to an uppercase label.
	if got := byCode["tlh"]; got != "TLH" {
		t.Fatalf("unexpected label for tlh: %q", got)
	}
	if _, ok := byCode[""]; ok {
		t.Fatalf("did not expect empty code in options")
	}
}

func TestNormalizeLangCodeKeepsRegion(t *testing.T) {
	t.Parallel()

	if got := normalizeLangCode("zh-CN"); got != "zh-cn" {
		t.Fatalf("unexpected code: got %q want zh-cn", got)
	}
	if got := normalizeLangCode(" EN "); got != "en" {
		t.Fatalf("unexpected code: got %q want en", got)
	}
	if got := normalizeLangCode("!!"); got != "" {
		t.Fatalf("unexpected code: got %q want empty", got)
	}
}
