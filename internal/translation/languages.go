package translation

import (
	"sort"
	"strings"

	googletrans "github.com/chrk623/google-trans2"

	"github.com/chrk623/google-trans2/internal/language"
)

type LanguageOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// LanguageOptions lists every code the registered providers accept, labeled
// from the backend language table where known.
func LanguageOptions(registry *Registry) []LanguageOption {
	supported := map[string]struct{}{}

	for _, code := range googletrans.LanguageCodes() {
		supported[code] = struct{}{}
	}

	if registry != nil {
		for _, provider := range registry.providers {
			for _, code := range provider.SupportedLanguages() {
				normalized := normalizeLangCode(code)
				if normalized == "" {
					continue
				}
				supported[normalized] = struct{}{}
			}
		}
	}

	codes := make([]string, 0, len(supported))
	for code := range supported {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	options := make([]LanguageOption, 0, len(codes))
	for _, code := range codes {
		label := googletrans.LanguageName(code)
		if label == "" {
			label = strings.ToUpper(code)
		}
		options = append(options, LanguageOption{Code: code, Label: label})
	}
	return options
}

// normalizeLangCode lowercases a language tag, keeping regional suffixes
// (for example "zh-CN" becomes "zh-cn"). Empty means blank or malformed.
func normalizeLangCode(raw string) string {
	return language.NormalizeTag(raw)
}
