// Package googletrans translates text through the Google Translate web
// frontend's undocumented batchexecute RPC, the same exchange the browser
// performs. No API key is involved; the wire format is unofficial and may
// change without notice.
package googletrans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	rpcEndpointPath = "/_/TranslateWebserverUi/data/batchexecute"
	defaultTimeout  = 5 * time.Second

	// maxTextRunes is the backend's input ceiling. Longer inputs are skipped
	// without a request.
	maxTextRunes = 5000
)

// Config controls a Client. The zero value is usable: translate.google.com,
// a five second timeout, no proxy, a User-Agent picked from the built-in
// pool, and no logging.
type Config struct {
	// URLSuffix selects the regional domain, for example "co.jp" for
	// translate.google.co.jp. Unknown suffixes fall back to "com".
	URLSuffix string

	// BaseURL replaces the translate.google.<suffix> frontend entirely,
	// for mirrors and tests. When set, URLSuffix is ignored.
	BaseURL string

	// Timeout bounds each round trip.
	Timeout time.Duration

	// Proxy maps URL schemes to proxy URLs, for example
	// {"https": "http://127.0.0.1:3128"}.
	Proxy map[string]string

	// UserAgents overrides the built-in User-Agent pool.
	UserAgents []string

	// GenerateUserAgent fabricates the session User-Agent instead of picking
	// one from the pool.
	GenerateUserAgent bool

	// Rand drives RPC id and User-Agent selection. Nil means the process
	// global source.
	Rand *rand.Rand

	// Logger receives warnings about coerced language codes and skipped
	// inputs. The zero value is silent.
	Logger zerolog.Logger
}

// Client is a translation session. Configuration is fixed at construction
// and a Client is safe for concurrent use.
type Client struct {
	baseURL  string
	endpoint string
	http     *http.Client
	rng      *rand.Rand
	logger   zerolog.Logger
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://translate.google." + resolveSuffix(cfg.URLSuffix)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	headers := map[string]string{
		"Referer":      baseURL,
		"User-Agent":   pickUserAgent(cfg.Rand, cfg.UserAgents, cfg.GenerateUserAgent),
		"Content-Type": "application/x-www-form-urlencoded;charset=utf-8",
	}
	transport, err := newTransport(cfg.Proxy, headers)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:  baseURL,
		endpoint: baseURL + rpcEndpointPath,
		http:     &http.Client{Timeout: timeout, Transport: transport},
		rng:      cfg.Rand,
		logger:   cfg.Logger,
	}, nil
}

// BaseURL returns the regional frontend the session talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TranslateOptions refines a Translate call. Zero values mean automatic
// detection on both sides and no pronunciation.
type TranslateOptions struct {
	SourceLang string
	TargetLang string
	Pronounce  bool
}

// Result is one translation outcome. Text carries single-sentence and
// URL-only responses; Candidates carries the two interpretations the backend
// answers with for an ambiguous source. Pronunciations are nil unless
// requested and offered.
type Result struct {
	Text                string
	Candidates          []string
	SourcePronunciation *string
	TargetPronunciation *string
}

// Detection names the language the backend detected.
type Detection struct {
	Code string
	Name string
}

// Translate translates text per opts. Inputs of maxTextRunes or more are
// skipped with a (nil, nil) return; empty input yields an empty Result.
// A response with no translation payload and a 2xx status also yields
// (nil, nil).
func (c *Client) Translate(ctx context.Context, text string, opts TranslateOptions) (*Result, error) {
	if n := utf8.RuneCountInString(text); n >= maxTextRunes {
		c.logger.Warn().Int("runes", n).Int("limit", maxTextRunes).Msg("text too long to translate")
		return nil, nil
	}
	if text == "" {
		c.logger.Warn().Msg("nothing to translate")
		return &Result{}, nil
	}

	srcLang := c.processLang(opts.SourceLang)
	tgtLang := c.processLang(opts.TargetLang)

	payload, ok, err := c.exchange(ctx, text, srcLang, tgtLang)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	decoded, err := decodeTranslation(payload, opts.Pronounce)
	if err != nil {
		return nil, err
	}

	out := &Result{
		SourcePronunciation: decoded.sourcePron,
		TargetPronunciation: decoded.targetPron,
	}
	if decoded.shape == shapeCandidatePair {
		out.Candidates = decoded.candidates
	} else {
		out.Text = decoded.text
	}
	return out, nil
}

// Detect names the language of text. Empty and oversized inputs are skipped
// with a (nil, nil) return, as is a 2xx response with no payload.
func (c *Client) Detect(ctx context.Context, text string) (*Detection, error) {
	if n := utf8.RuneCountInString(text); n >= maxTextRunes {
		c.logger.Warn().Int("runes", n).Int("limit", maxTextRunes).Msg("text too long to detect")
		return nil, nil
	}
	if text == "" {
		c.logger.Warn().Msg("nothing to detect")
		return nil, nil
	}

	payload, ok, err := c.exchange(ctx, text, LangAuto, LangAuto)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	code, err := decodeDetection(payload)
	if err != nil {
		return nil, err
	}
	name, known := languageNames[code]
	if !known {
		return nil, fmt.Errorf("detected %q: %w", code, ErrUnknownLanguage)
	}
	return &Detection{Code: code, Name: name}, nil
}

// processLang validates a language code, coercing anything outside the table
// to automatic detection.
func (c *Client) processLang(lang string) string {
	if lang == "" || lang == LangAuto {
		return LangAuto
	}
	if IsSupported(lang) {
		return lang
	}
	c.logger.Warn().Str("lang", lang).Msg("unsupported language code, defaulting to auto")
	return LangAuto
}

// exchange posts one f.req payload and returns the decoded payload envelope
// from the first line carrying the RPC marker. ok is false when a 2xx
// response has no marker line; a non-2xx response with no marker line
// becomes a classified *APIError.
func (c *Client) exchange(ctx context.Context, text, srcLang, tgtLang string) ([]json.RawMessage, bool, error) {
	body, err := buildFReq(pickRPCID(c.rng), text, srcLang, tgtLang)
	if err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, false, fmt.Errorf("request timeout: %w", err)
		}
		return nil, false, connectError(err)
	}
	defer resp.Body.Close()

	line, found, err := findRPCLine(resp.Body, translateRPCIDs[0])
	if err != nil {
		return nil, false, err
	}
	if !found {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, false, statusError(resp.StatusCode, http.StatusText(resp.StatusCode), true, tgtLang)
		}
		return nil, false, nil
	}

	payload, err := decodeEnvelope(line)
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
