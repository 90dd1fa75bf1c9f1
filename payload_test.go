package googletrans

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
)

func TestBuildFReq(t *testing.T) {
	t.Parallel()

	got, err := buildFReq("MkEWBc", "  Hello world  ", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "f.req=") {
		t.Fatalf("expected f.req= prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "&") {
		t.Fatalf("expected trailing ampersand, got %q", got)
	}

	outer, err := url.QueryUnescape(strings.TrimSuffix(strings.TrimPrefix(got, "f.req="), "&"))
	if err != nil {
		t.Fatalf("unexpected unescape error: %v", err)
	}

	var envelope [][][]json.RawMessage
	if err := json.Unmarshal([]byte(outer), &envelope); err != nil {
		t.Fatalf("unexpected envelope decode error: %v", err)
	}
	if len(envelope) != 1 || len(envelope[0]) != 1 || len(envelope[0][0]) != 4 {
		t.Fatalf("unexpected envelope layout: %s", outer)
	}

	var rpcID string
	if err := json.Unmarshal(envelope[0][0][0], &rpcID); err != nil {
		t.Fatalf("unexpected rpc id decode error: %v", err)
	}
	if rpcID != "MkEWBc" {
		t.Fatalf("unexpected rpc id: %q", rpcID)
	}

	var inner string
	if err := json.Unmarshal(envelope[0][0][1], &inner); err != nil {
		t.Fatalf("unexpected inner decode error: %v", err)
	}
	if inner != `[["Hello world","en","es",true],[1]]` {
		t.Fatalf("unexpected request parameters: %s", inner)
	}
}

func TestCompactJSON(t *testing.T) {
	t.Parallel()

	got, err := compactJSON([]any{"<a> & b", 1, nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `["<a> & b",1,null]` {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestPickRPCID(t *testing.T) {
	t.Parallel()

	if got := pickRPCID(nil); got != "MkEWBc" {
		t.Fatalf("unexpected rpc id: %q", got)
	}
}
