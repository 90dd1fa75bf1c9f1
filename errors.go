package googletrans

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedShape reports a response payload whose structure matches
	// none of the known translation shapes.
	ErrUnrecognizedShape = errors.New("unrecognized response shape")

	// ErrUnknownLanguage reports a detected language code missing from the
	// supported language table.
	ErrUnknownLanguage = errors.New("unknown language code")
)

// ProbableCause is the diagnostic classification attached to an APIError.
type ProbableCause int

const (
	CauseUnknown ProbableCause = iota
	CauseTimeout
	CauseBadToken
	CauseUnsupportedLanguage
	CauseUpstreamError
)

// classifyCause infers the probable cause of a failed exchange from the HTTP
// status and the language-check flag. Classification is diagnostic only; no
// retry decisions hang off it.
func classifyCause(status int, langCheck bool) ProbableCause {
	switch {
	case status == 403:
		return CauseBadToken
	case status == 200 && !langCheck:
		return CauseUnsupportedLanguage
	case status >= 500:
		return CauseUpstreamError
	default:
		return CauseUnknown
	}
}

// APIError describes a failed exchange with the translation backend. Status
// is zero when no response was received at all.
type APIError struct {
	Status int
	Reason string
	Cause  ProbableCause
	Lang   string
	err    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "Failed to connect. Probable cause: timeout"
	}
	return fmt.Sprintf("%d (%s) from Google Translate API. Probable cause: %s", e.Status, e.Reason, e.causeText())
}

func (e *APIError) causeText() string {
	switch e.Cause {
	case CauseBadToken:
		return "Bad token or upstream API changes"
	case CauseUnsupportedLanguage:
		return fmt.Sprintf("Unsupported language '%s'", e.Lang)
	case CauseUpstreamError:
		return "Upstream API error. Try again later."
	default:
		return "Unknown"
	}
}

// Unwrap exposes the transport error underlying a connect failure, when any.
func (e *APIError) Unwrap() error {
	return e.err
}

// connectError builds the APIError used when the request never produced a
// response.
func connectError(err error) *APIError {
	return &APIError{Cause: CauseTimeout, err: err}
}

// statusError builds the APIError for a response with a non-usable payload.
func statusError(status int, reason string, langCheck bool, lang string) *APIError {
	return &APIError{
		Status: status,
		Reason: reason,
		Cause:  classifyCause(status, langCheck),
		Lang:   lang,
	}
}
