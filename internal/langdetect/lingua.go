// Package langdetect classifies text offline with lingua, for detection
// without a network round trip and for checking translation output.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// minSampleLetters is the fewest letters worth classifying. Shorter samples
// are reported as undecidable instead of guessed.
const minSampleLetters = 6

var (
	once     sync.Once
	detector lingua.LanguageDetector
)

// DetectISO6391 returns the lowercase ISO 639-1 code for the sample, or ""
// when the sample is too short or the classifier cannot decide.
func DetectISO6391(text string) string {
	sample := strings.TrimSpace(text)
	if countLetters(sample) < minSampleLetters {
		return ""
	}

	detected, ok := sharedDetector().DetectLanguageOf(sample)
	if !ok {
		return ""
	}

	code := strings.ToLower(detected.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// sharedDetector builds the lingua detector once. Model loading is the
// expensive part, so it stays lazy until the first detection.
func sharedDetector() lingua.LanguageDetector {
	once.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}
