package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/chrk623/google-trans2/internal/language"
)

// minVerifySampleRunes is the shortest translated sample worth running
// through offline detection; anything shorter passes unverified.
const minVerifySampleRunes = 20

// RunOptions controls one translation execution.
type RunOptions struct {
	Provider string
	Force    bool
	Verify   bool
}

// RunResult is a provider response plus execution provenance.
type RunResult struct {
	TranslateResponse
	Cached   bool
	Verified bool
}

// Verifier checks what language a piece of text reads as. Implementations
// return "" when they cannot tell.
type Verifier interface {
	DetectISO6391(text string) string
}

// Manager coordinates provider calls with an in-memory result cache and
// optional post-translation verification.
type Manager struct {
	registry *Registry
	verifier Verifier

	mu    sync.Mutex
	cache map[string]TranslateResponse
}

func NewManager(registry *Registry, verifier Verifier) *Manager {
	return &Manager{
		registry: registry,
		verifier: verifier,
		cache:    make(map[string]TranslateResponse),
	}
}

func (m *Manager) DefaultProvider() string {
	if m == nil || m.registry == nil {
		return ""
	}
	return m.registry.DefaultProvider()
}

// Translate resolves a provider, consults the cache, and runs the request.
// Force bypasses the cache lookup; the fresh result still replaces the
// cached one.
func (m *Manager) Translate(ctx context.Context, req TranslateRequest, opts RunOptions) (*RunResult, error) {
	if m == nil || m.registry == nil {
		return nil, fmt.Errorf("translation manager is not initialized")
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

	provider, err := m.registry.Provider(opts.Provider)
	if err != nil {
		return nil, err
	}

	key := cacheKey(provider.Name(), sourceLang, targetLang, req.Pronounce, text)
	if !opts.Force {
		if cached, ok := m.lookup(key); ok {
			return &RunResult{TranslateResponse: cached, Cached: true}, nil
		}
	}

	resp, err := provider.Translate(ctx, TranslateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Pronounce:  req.Pronounce,
	})
	if err != nil {
		return nil, fmt.Errorf("translate with %s: %w", provider.Name(), err)
	}
	if strings.TrimSpace(resp.Text) == "" && len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("translate with %s: empty translation", provider.Name())
	}

	result := &RunResult{TranslateResponse: *resp}
	if opts.Verify {
		verified, err := m.verifyTarget(resp, targetLang)
		if err != nil {
			return nil, err
		}
		result.Verified = verified
	}

	m.store(key, *resp)
	return result, nil
}

// Detect runs language detection on the named provider (default when empty).
func (m *Manager) Detect(ctx context.Context, text, providerName string) (*DetectResponse, error) {
	if m == nil || m.registry == nil {
		return nil, fmt.Errorf("translation manager is not initialized")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	detector, err := m.registry.Detector(providerName)
	if err != nil {
		return nil, err
	}
	return detector.Detect(ctx, text)
}

// Languages lists every language the registered providers accept.
func (m *Manager) Languages() []LanguageOption {
	if m == nil {
		return nil
	}
	return LanguageOptions(m.registry)
}

// CacheSize reports the number of cached translations.
func (m *Manager) CacheSize() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}

// verifyTarget checks that the translated text reads as the requested target
// language. Short samples and undecidable detections pass unverified; a
// confident mismatch is an error.
func (m *Manager) verifyTarget(resp *TranslateResponse, targetLang string) (bool, error) {
	if m.verifier == nil {
		return false, nil
	}

	sample := resp.Text
	if strings.TrimSpace(sample) == "" && len(resp.Candidates) > 0 {
		sample = strings.Join(resp.Candidates, " ")
	}
	if utf8.RuneCountInString(strings.TrimSpace(sample)) < minVerifySampleRunes {
		return false, nil
	}

	detected := m.verifier.DetectISO6391(sample)
	if detected == "" {
		return false, nil
	}

	if base := language.NormalizeCode(targetLang); detected != base {
		return false, fmt.Errorf("translation verification failed: text reads as %q, requested %q", detected, targetLang)
	}
	return true, nil
}

func (m *Manager) lookup(key string) (TranslateResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.cache[key]
	return resp, ok
}

func (m *Manager) store(key string, resp TranslateResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[key] = resp
}

func cacheKey(provider, sourceLang, targetLang string, pronounce bool, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s|%s|%s|%t|%s", provider, sourceLang, targetLang, pronounce, hex.EncodeToString(sum[:]))
}
