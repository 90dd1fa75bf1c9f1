package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	googletrans "github.com/chrk623/google-trans2"
)

const (
	// DefaultGTXEndpoint serves the legacy translate_a API used by browser
	// extensions.
	DefaultGTXEndpoint = "https://translate.googleapis.com/translate_a/single"
	// GTXEndpointEnvVar overrides the legacy endpoint.
	GTXEndpointEnvVar = "GTRANS_GTX_ENDPOINT"
)

// GTXProvider translates through the legacy translate_a endpoint. It yields
// plain sentence text only; pronunciation requests are ignored.
type GTXProvider struct {
	endpoint string
	client   *http.Client
}

// NewGTXProviderFromEnv builds a gtx provider honoring GTRANS_GTX_ENDPOINT.
func NewGTXProviderFromEnv() *GTXProvider {
	return NewGTXProvider(os.Getenv(GTXEndpointEnvVar))
}

func NewGTXProvider(endpoint string) *GTXProvider {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultGTXEndpoint
	}
	return &GTXProvider{
		endpoint: trimmed,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *GTXProvider) Name() string {
	return "gtx"
}

func (p *GTXProvider) SupportedLanguages() []string {
	return googletrans.LanguageCodes()
}

func (p *GTXProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("gtx provider is not initialized")
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

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", sourceLang)
	query.Set("tl", targetLang)
	query.Set("dt", "t")
	query.Set("q", text)

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build gtx request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send gtx request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gtx response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gtx endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	translated, detected, err := decodeGTXResponse(body)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(translated) == "" {
		return nil, fmt.Errorf("gtx translation was empty")
	}
	if detected == "" {
		detected = sourceLang
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   detected,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

// decodeGTXResponse walks the endpoint's positional array: section 0 is a
// list of sentence pairs whose position 0 is translated text, section 2 is
// the detected source language.
func decodeGTXResponse(body []byte) (string, string, error) {
	var sections []json.RawMessage
	if err := json.Unmarshal(body, &sections); err != nil {
		return "", "", fmt.Errorf("decode gtx response: %w", err)
	}
	if len(sections) == 0 {
		return "", "", fmt.Errorf("empty gtx response")
	}

	var sentences []json.RawMessage
	if err := json.Unmarshal(sections[0], &sentences); err != nil {
		return "", "", fmt.Errorf("decode gtx sentences: %w", err)
	}

	var text strings.Builder
	for i, raw := range sentences {
		var sentence []json.RawMessage
		if err := json.Unmarshal(raw, &sentence); err != nil {
			return "", "", fmt.Errorf("decode gtx sentence %d: %w", i, err)
		}
		if len(sentence) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(sentence[0], &piece); err != nil {
			return "", "", fmt.Errorf("decode gtx sentence %d text: %w", i, err)
		}
		text.WriteString(piece)
	}

	detected := ""
	if len(sections) > 2 {
		var code string
		if err := json.Unmarshal(sections[2], &code); err == nil {
			detected = strings.ToLower(strings.TrimSpace(code))
		}
	}

	return text.String(), detected, nil
}
