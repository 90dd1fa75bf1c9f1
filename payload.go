package googletrans

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
)

// translateRPCIDs lists the batchexecute RPC ids the web frontend issues for
// translation. Requests pick one at random; response lines are matched
// against the first entry.
var translateRPCIDs = []string{"MkEWBc"}

func pickRPCID(rng *rand.Rand) string {
	return choose(rng, translateRPCIDs)
}

// buildFReq assembles the f.req form body for one translation request: the
// trimmed text and language pair as a compact JSON parameter array, wrapped
// in the batchexecute envelope, percent-encoded.
func buildFReq(rpcID, text, srcLang, tgtLang string) (string, error) {
	params := []any{
		[]any{strings.TrimSpace(text), srcLang, tgtLang, true},
		[]any{1},
	}
	inner, err := compactJSON(params)
	if err != nil {
		return "", fmt.Errorf("encode request parameters: %w", err)
	}

	envelope := []any{[]any{[]any{rpcID, inner, nil, "generic"}}}
	outer, err := compactJSON(envelope)
	if err != nil {
		return "", fmt.Errorf("encode request envelope: %w", err)
	}

	return "f.req=" + url.QueryEscape(outer) + "&", nil
}

// compactJSON marshals v without indentation, HTML escaping, or a trailing
// newline, matching the payload the web frontend sends.
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
