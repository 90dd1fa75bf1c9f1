package translation

import (
	"github.com/chrk623/google-trans2/internal/langdetect"
)

// LinguaVerifier backs translation verification with the offline lingua
// detector.
type LinguaVerifier struct{}

func (LinguaVerifier) DetectISO6391(text string) string {
	return langdetect.DetectISO6391(text)
}
