package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	googletrans "github.com/chrk623/google-trans2"

	"github.com/chrk623/google-trans2/internal/language"
	"github.com/chrk623/google-trans2/internal/translation"
)

// maxTranslateRunes mirrors the backend's input ceiling so oversized requests
// fail fast instead of being skipped upstream.
const maxTranslateRunes = 5000

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Pronounce  bool   `json:"pronounce"`
	Provider   string `json:"provider"`
	Verify     bool   `json:"verify"`
	Force      bool   `json:"force"`
}

type translateResponse struct {
	Text                string   `json:"text,omitempty"`
	Candidates          []string `json:"candidates,omitempty"`
	SourcePronunciation *string  `json:"source_pronunciation,omitempty"`
	TargetPronunciation *string  `json:"target_pronunciation,omitempty"`
	SourceLang          string   `json:"source_lang"`
	TargetLang          string   `json:"target_lang"`
	Provider            string   `json:"provider"`
	Cached              bool     `json:"cached"`
	Verified            bool     `json:"verified"`
	LatencyMs           int64    `json:"latency_ms"`
}

type detectRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
}

type detectResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"body": "must be valid JSON"})
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return failValidation(c, map[string]string{"text": "is required"})
	}
	if utf8.RuneCountInString(text) >= maxTranslateRunes {
		return failValidation(c, map[string]string{"text": "must be shorter than 5000 characters"})
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		return failValidation(c, map[string]string{"target_lang": "is required"})
	}
	if language.NormalizeTag(req.TargetLang) == "" {
		return failValidation(c, map[string]string{"target_lang": "is not a valid language tag"})
	}

	result, err := s.manager.Translate(c.Request().Context(), translation.TranslateRequest{
		Text:       text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Pronounce:  req.Pronounce,
	}, translation.RunOptions{
		Provider: req.Provider,
		Force:    req.Force,
		Verify:   req.Verify || s.opts.VerifyDefault,
	})
	if err != nil {
		return s.translationError(c, err)
	}

	return success(c, translateResponse{
		Text:                result.Text,
		Candidates:          result.Candidates,
		SourcePronunciation: result.SourcePronunciation,
		TargetPronunciation: result.TargetPronunciation,
		SourceLang:          result.SourceLang,
		TargetLang:          result.TargetLang,
		Provider:            result.ProviderName,
		Cached:              result.Cached,
		Verified:            result.Verified,
		LatencyMs:           result.LatencyMs,
	})
}

func (s *Server) handleDetect(c echo.Context) error {
	var req detectRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"body": "must be valid JSON"})
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return failValidation(c, map[string]string{"text": "is required"})
	}
	if utf8.RuneCountInString(text) >= maxTranslateRunes {
		return failValidation(c, map[string]string{"text": "must be shorter than 5000 characters"})
	}

	detection, err := s.manager.Detect(c.Request().Context(), text, req.Provider)
	if err != nil {
		return s.translationError(c, err)
	}

	return success(c, detectResponse{
		Code:     detection.Code,
		Name:     detection.Name,
		Provider: detection.ProviderName,
	})
}

// translationError maps backend failures onto HTTP statuses: bad provider
// choices are the caller's fault, unrecognized payloads and unknown language
// codes are 422, everything else surfaces as a bad gateway carrying the
// classified message.
func (s *Server) translationError(c echo.Context, err error) error {
	var apiErr *googletrans.APIError
	switch {
	case errors.Is(err, translation.ErrUnknownProvider),
		errors.Is(err, translation.ErrDetectionUnsupported):
		return failValidation(c, map[string]string{"provider": err.Error()})
	case errors.Is(err, googletrans.ErrUnrecognizedShape):
		s.logger.Error().Err(err).Msg("translation payload not recognized")
		return fail(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, googletrans.ErrUnknownLanguage):
		s.logger.Error().Err(err).Msg("detected language not in table")
		return fail(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.As(err, &apiErr):
		s.logger.Error().Err(err).Msg("upstream translation failed")
		return fail(c, http.StatusBadGateway, apiErr.Error(), nil)
	default:
		s.logger.Error().Err(err).Msg("translation failed")
		return fail(c, http.StatusBadGateway, err.Error(), nil)
	}
}
