package translation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubProvider struct {
	name    string
	calls   int
	lastReq TranslateRequest
	resp    TranslateResponse
	err     error
}

func (p *stubProvider) Translate(_ context.Context, req TranslateRequest) (*TranslateResponse, error) {
	p.calls++
	p.lastReq = req
	if p.err != nil {
		return nil, p.err
	}
	resp := p.resp
	if resp.ProviderName == "" {
		resp.ProviderName = p.name
	}
	return &resp, nil
}

func (p *stubProvider) Name() string {
	return p.name
}

func (p *stubProvider) SupportedLanguages() []string {
	return []string{"en", "zh-cn"}
}

type stubDetectProvider struct {
	stubProvider
	detectCalls int
	detectResp  DetectResponse
}

func (p *stubDetectProvider) Detect(_ context.Context, _ string) (*DetectResponse, error) {
	p.detectCalls++
	resp := p.detectResp
	if resp.ProviderName == "" {
		resp.ProviderName = p.name
	}
	return &resp, nil
}

type stubVerifier struct {
	code  string
	calls int
}

func (v *stubVerifier) DetectISO6391(_ string) string {
	v.calls++
	return v.code
}

func newTestManager(t *testing.T, provider Provider, verifier Verifier) *Manager {
	t.Helper()

	registry := NewRegistry(provider.Name())
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	return NewManager(registry, verifier)
}

func TestManagerTranslate_CachesRepeatedRequests(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{Text: "你好，世界", SourceLang: "en", TargetLang: "zh-cn"},
	}
	manager := newTestManager(t, provider, nil)

	req := TranslateRequest{Text: "Hello world", TargetLang: "zh-cn"}
	first, err := manager.Translate(context.Background(), req, RunOptions{})
	if err != nil {
		t.Fatalf("first translate: %v", err)
	}
	if first.Cached {
		t.Fatalf("did not expect first result to be cached")
	}
	if first.Text != "你好，世界" {
		t.Fatalf("unexpected translation: %q", first.Text)
	}

	second, err := manager.Translate(context.Background(), req, RunOptions{})
	if err != nil {
		t.Fatalf("second translate: %v", err)
	}
	if !second.Cached {
		t.Fatalf("expected second result to be cached")
	}
	if second.Text != first.Text {
		t.Fatalf("cached translation mismatch: got %q want %q", second.Text, first.Text)
	}
	if provider.calls != 1 {
		t.Fatalf("unexpected provider call count: got %d want 1", provider.calls)
	}
	if manager.CacheSize() != 1 {
		t.Fatalf("unexpected cache size: got %d want 1", manager.CacheSize())
	}
}

func TestManagerTranslate_ForceBypassesCache(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{Text: "Hola mundo", SourceLang: "en", TargetLang: "es"},
	}
	manager := newTestManager(t, provider, nil)

	req := TranslateRequest{Text: "Hello world", TargetLang: "es"}
	if _, err := manager.Translate(context.Background(), req, RunOptions{}); err != nil {
		t.Fatalf("first translate: %v", err)
	}
	forced, err := manager.Translate(context.Background(), req, RunOptions{Force: true})
	if err != nil {
		t.Fatalf("forced translate: %v", err)
	}
	if forced.Cached {
		t.Fatalf("did not expect forced result to be cached")
	}
	if provider.calls != 2 {
		t.Fatalf("unexpected provider call count: got %d want 2", provider.calls)
	}
}

func TestManagerTranslate_CacheKeyCoversPronounce(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{Text: "Hola mundo", SourceLang: "en", TargetLang: "es"},
	}
	manager := newTestManager(t, provider, nil)

	plain := TranslateRequest{Text: "Hello world", TargetLang: "es"}
	pronounced := TranslateRequest{Text: "Hello world", TargetLang: "es", Pronounce: true}
	if _, err := manager.Translate(context.Background(), plain, RunOptions{}); err != nil {
		t.Fatalf("plain translate: %v", err)
	}
	if _, err := manager.Translate(context.Background(), pronounced, RunOptions{}); err != nil {
		t.Fatalf("pronounced translate: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("unexpected provider call count: got %d want 2", provider.calls)
	}
	if manager.CacheSize() != 2 {
		t.Fatalf("unexpected cache size: got %d want 2", manager.CacheSize())
	}
}

func TestManagerTranslate_NormalizesLanguageCodes(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{Text: "你好", SourceLang: "en", TargetLang: "zh-cn"},
	}
	manager := newTestManager(t, provider, nil)

	req := TranslateRequest{Text: "  Hello  ", SourceLang: "EN", TargetLang: " ZH-CN "}
	if _, err := manager.Translate(context.Background(), req, RunOptions{}); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if provider.lastReq.Text != "Hello" {
		t.Fatalf("unexpected text passed to provider: %q", provider.lastReq.Text)
	}
	if provider.lastReq.SourceLang != "en" || provider.lastReq.TargetLang != "zh-cn" {
		t.Fatalf("unexpected language pair passed to provider: %q -> %q",
			provider.lastReq.SourceLang, provider.lastReq.TargetLang)
	}
}

func TestManagerTranslate_ValidatesInput(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{name: "stub", resp: TranslateResponse{Text: "x"}}
	manager := newTestManager(t, provider, nil)

	if _, err := manager.Translate(context.Background(), TranslateRequest{TargetLang: "es"}, RunOptions{}); err == nil {
		t.Fatalf("expected error for empty text")
	}
	if _, err := manager.Translate(context.Background(), TranslateRequest{Text: "hi"}, RunOptions{}); err == nil {
		t.Fatalf("expected error for missing target language")
	}
	if provider.calls != 0 {
		t.Fatalf("did not expect provider calls, got %d", provider.calls)
	}
}

func TestManagerTranslate_UnknownProvider(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{name: "stub", resp: TranslateResponse{Text: "x"}}
	manager := newTestManager(t, provider, nil)

	_, err := manager.Translate(
		context.Background(),
		TranslateRequest{Text: "hi", TargetLang: "es"},
		RunOptions{Provider: "nope"},
	)
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestManagerTranslate_VerifyPassesOnMatch(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{
			Text:       "Dies ist ein ausreichend langer Beispielsatz.",
			SourceLang: "en",
			TargetLang: "de",
		},
	}
	verifier := &stubVerifier{code: "de"}
	manager := newTestManager(t, provider, verifier)

	result, err := manager.Translate(
		context.Background(),
		TranslateRequest{Text: "This is a long enough example sentence.", TargetLang: "de"},
		RunOptions{Verify: true},
	)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected result to be verified")
	}
	if verifier.calls != 1 {
		t.Fatalf("unexpected verifier call count: got %d want 1", verifier.calls)
	}
}

func TestManagerTranslate_VerifyMatchesBaseOfRegionalTag(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{
			Text:       "这是一个足够长的例句，用来检查语言。",
			SourceLang: "en",
			TargetLang: "zh-cn",
		},
	}
	verifier := &stubVerifier{code: "zh"}
	manager := newTestManager(t, provider, verifier)

	result, err := manager.Translate(
		context.Background(),
		TranslateRequest{Text: "This is a long enough example sentence.", TargetLang: "zh-cn"},
		RunOptions{Verify: true},
	)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected result to be verified")
	}
}

func TestManagerTranslate_VerifyFailsOnMismatch(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{
			Text:       "Dies ist ein ausreichend langer Beispielsatz.",
			SourceLang: "en",
			TargetLang: "fr",
		},
	}
	verifier := &stubVerifier{code: "de"}
	manager := newTestManager(t, provider, verifier)

	_, err := manager.Translate(
		context.Background(),
		TranslateRequest{Text: "This is a long enough example sentence.", TargetLang: "fr"},
		RunOptions{Verify: true},
	)
	if err == nil {
		t.Fatalf("expected verification error")
	}
	if !strings.Contains(err.Error(), "verification failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestManagerTranslate_VerifySkipsShortAndUndecidableText(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		name: "stub",
		resp: TranslateResponse{Text: "Hallo", SourceLang: "en", TargetLang: "de"},
	}
	verifier := &stubVerifier{code: "fr"}
	manager := newTestManager(t, provider, verifier)

	result, err := manager.Translate(
		context.Background(),
		TranslateRequest{Text: "Hello", TargetLang: "de"},
		RunOptions{Verify: true},
	)
	if err != nil {
		t.Fatalf("translate short text: %v", err)
	}
	if result.Verified {
		t.Fatalf("did not expect short text to be verified")
	}
	if verifier.calls != 0 {
		t.Fatalf("did not expect verifier calls for short text, got %d", verifier.calls)
	}

	provider.resp.Text = "Dies ist ein ausreichend langer Beispielsatz."
	verifier.code = ""
	result, err = manager.Translate(
		context.Background(),
		TranslateRequest{Text: "This is a long enough example sentence.", TargetLang: "de"},
		RunOptions{Verify: true},
	)
	if err != nil {
		t.Fatalf("translate undecidable text: %v", err)
	}
	if result.Verified {
		t.Fatalf("did not expect undecidable text to be verified")
	}
}

func TestManagerDetect(t *testing.T) {
	t.Parallel()

	provider := &stubDetectProvider{
		stubProvider: stubProvider{name: "stub", resp: TranslateResponse{Text: "x"}},
		detectResp:   DetectResponse{Code: "en", Name: "english"},
	}
	manager := newTestManager(t, provider, nil)

	detection, err := manager.Detect(context.Background(), "Hello world", "")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if detection.Code != "en" || detection.Name != "english" {
		t.Fatalf("unexpected detection: %+v", detection)
	}
	if detection.ProviderName != "stub" {
		t.Fatalf("unexpected provider name: %q", detection.ProviderName)
	}
	if provider.detectCalls != 1 {
		t.Fatalf("unexpected detect call count: got %d want 1", provider.detectCalls)
	}
}

func TestManagerDetect_RejectsProvidersWithoutDetection(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{name: "stub", resp: TranslateResponse{Text: "x"}}
	manager := newTestManager(t, provider, nil)

	_, err := manager.Detect(context.Background(), "Hello world", "")
	if !errors.Is(err, ErrDetectionUnsupported) {
		t.Fatalf("expected ErrDetectionUnsupported, got %v", err)
	}
}
