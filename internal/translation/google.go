package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	googletrans "github.com/chrk623/google-trans2"
)

// GoogleProvider translates through the Google Translate web frontend's
// batchexecute RPC.
type GoogleProvider struct {
	client *googletrans.Client
}

func NewGoogleProvider(client *googletrans.Client) *GoogleProvider {
	return &GoogleProvider{client: client}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) SupportedLanguages() []string {
	return googletrans.LanguageCodes()
}

func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("google provider is not initialized")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	targetLang := normalizeLangCode(req.TargetLang)
	if targetLang == "" {
		return nil, fmt.Errorf("target language is required")
	}
	sourceLang := normalizeLangCode(req.SourceLang)
	if sourceLang == "" {
		sourceLang = googletrans.LangAuto
	}

	started := time.Now()
	result, err := p.client.Translate(ctx, text, googletrans.TranslateOptions{
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Pronounce:  req.Pronounce,
	})
	if err != nil {
		return nil, fmt.Errorf("google translate: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("google translate: no result for %d characters", len(text))
	}

	return &TranslateResponse{
		Text:                result.Text,
		Candidates:          result.Candidates,
		SourcePronunciation: result.SourcePronunciation,
		TargetPronunciation: result.TargetPronunciation,
		SourceLang:          sourceLang,
		TargetLang:          targetLang,
		ProviderName:        p.Name(),
		LatencyMs:           time.Since(started).Milliseconds(),
	}, nil
}

// Detect names the language of text via the same RPC exchange.
func (p *GoogleProvider) Detect(ctx context.Context, text string) (*DetectResponse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("google provider is not initialized")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	detection, err := p.client.Detect(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("google detect: %w", err)
	}
	if detection == nil {
		return nil, fmt.Errorf("google detect: no result for %d characters", len(text))
	}

	return &DetectResponse{
		Code:         detection.Code,
		Name:         detection.Name,
		ProviderName: p.Name(),
	}, nil
}
