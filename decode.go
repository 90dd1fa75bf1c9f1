package googletrans

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Response lines carrying a full translation payload regularly exceed
// bufio.Scanner's default 64KiB limit.
const maxLineBytes = 10 << 20

// translationShape identifies which of the known payload layouts a response
// matched.
type translationShape int

const (
	shapeSingleSentence translationShape = iota
	shapeBareResult
	shapeCandidatePair
)

// translation is the decoded form of one translation payload.
type translation struct {
	shape      translationShape
	text       string
	candidates []string
	sourcePron *string
	targetPron *string
}

// findRPCLine scans the streamed response body for the first line containing
// the RPC marker.
func findRPCLine(body io.Reader, marker string) (string, bool, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, marker) {
			return line, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("read response body: %w", err)
	}
	return "", false, nil
}

// decodeEnvelope peels the two JSON layers of a batchexecute response line:
// the outer frame whose [0][2] position holds the payload as a JSON string,
// then the payload itself.
func decodeEnvelope(line string) ([]json.RawMessage, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal([]byte(line), &outer); err != nil {
		return nil, fmt.Errorf("decode response line: %w", err)
	}
	if len(outer) == 0 {
		return nil, fmt.Errorf("decode response line: empty frame: %w", ErrUnrecognizedShape)
	}

	var frame []json.RawMessage
	if err := json.Unmarshal(outer[0], &frame); err != nil {
		return nil, fmt.Errorf("decode response frame: %w", err)
	}
	if len(frame) < 3 {
		return nil, fmt.Errorf("decode response frame: %d positions: %w", len(frame), ErrUnrecognizedShape)
	}

	var payloadJSON string
	if err := json.Unmarshal(frame[2], &payloadJSON); err != nil {
		return nil, fmt.Errorf("decode payload string: %w", err)
	}

	var payload []json.RawMessage
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

// decodeTranslation maps the sentence block at payload[1][0] to one of the
// known shapes: a block of one element with more than five positions carries
// sentence fragments, one with five or fewer carries a bare string (URL-only
// input), and a block of two carries a candidate pair for an ambiguous
// source. Anything else fails with ErrUnrecognizedShape.
func decodeTranslation(payload []json.RawMessage, pronounce bool) (*translation, error) {
	block, err := sentenceBlock(payload)
	if err != nil {
		return nil, err
	}

	switch len(block) {
	case 1:
		return decodeSingle(payload, block, pronounce)
	case 2:
		return decodePair(payload, block, pronounce)
	default:
		return nil, fmt.Errorf("sentence block of %d elements: %w", len(block), ErrUnrecognizedShape)
	}
}

func sentenceBlock(payload []json.RawMessage) ([]json.RawMessage, error) {
	if len(payload) < 2 {
		return nil, fmt.Errorf("translation payload of %d positions: %w", len(payload), ErrUnrecognizedShape)
	}
	var target []json.RawMessage
	if err := json.Unmarshal(payload[1], &target); err != nil {
		return nil, fmt.Errorf("decode translation section: %w", err)
	}
	if len(target) == 0 {
		return nil, fmt.Errorf("empty translation section: %w", ErrUnrecognizedShape)
	}
	var block []json.RawMessage
	if err := json.Unmarshal(target[0], &block); err != nil {
		return nil, fmt.Errorf("decode sentence block: %w", err)
	}
	return block, nil
}

func decodeSingle(payload []json.RawMessage, block []json.RawMessage, pronounce bool) (*translation, error) {
	var first []json.RawMessage
	if err := json.Unmarshal(block[0], &first); err != nil {
		return nil, fmt.Errorf("decode sentence element: %w", err)
	}

	if len(first) <= 5 {
		// URL-only input: the element carries the bare string and nothing
		// else, pronunciation included.
		var bare string
		if err := json.Unmarshal(first[0], &bare); err != nil {
			return nil, fmt.Errorf("decode bare result: %w", err)
		}
		return &translation{shape: shapeBareResult, text: bare}, nil
	}

	var fragments []json.RawMessage
	if err := json.Unmarshal(first[5], &fragments); err != nil {
		return nil, fmt.Errorf("decode sentence fragments: %w", err)
	}

	var text strings.Builder
	for i, raw := range fragments {
		var fragment []json.RawMessage
		if err := json.Unmarshal(raw, &fragment); err != nil {
			return nil, fmt.Errorf("decode fragment %d: %w", i, err)
		}
		if len(fragment) == 0 {
			return nil, fmt.Errorf("empty fragment %d: %w", i, ErrUnrecognizedShape)
		}
		var piece string
		if err := json.Unmarshal(fragment[0], &piece); err != nil {
			return nil, fmt.Errorf("decode fragment %d text: %w", i, err)
		}
		text.WriteString(strings.TrimSpace(piece))
		text.WriteString(" ")
	}

	out := &translation{shape: shapeSingleSentence, text: text.String()}
	if pronounce {
		if err := attachPronunciations(out, payload, block); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodePair(payload []json.RawMessage, block []json.RawMessage, pronounce bool) (*translation, error) {
	candidates := make([]string, 0, len(block))
	for i, raw := range block {
		var element []json.RawMessage
		if err := json.Unmarshal(raw, &element); err != nil {
			return nil, fmt.Errorf("decode candidate %d: %w", i, err)
		}
		if len(element) == 0 {
			return nil, fmt.Errorf("empty candidate %d: %w", i, ErrUnrecognizedShape)
		}
		var candidate string
		if err := json.Unmarshal(element[0], &candidate); err != nil {
			return nil, fmt.Errorf("decode candidate %d text: %w", i, err)
		}
		candidates = append(candidates, candidate)
	}

	out := &translation{shape: shapeCandidatePair, candidates: candidates}
	if pronounce {
		if err := attachPronunciations(out, payload, block); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// attachPronunciations reads the source pronunciation at payload[0][0] and
// the target pronunciation at position 1 of the block's first element. JSON
// null at either position means the backend offered none.
func attachPronunciations(t *translation, payload []json.RawMessage, block []json.RawMessage) error {
	var head []json.RawMessage
	if err := json.Unmarshal(payload[0], &head); err != nil {
		return fmt.Errorf("decode pronunciation section: %w", err)
	}
	if len(head) == 0 {
		return fmt.Errorf("empty pronunciation section: %w", ErrUnrecognizedShape)
	}
	if err := json.Unmarshal(head[0], &t.sourcePron); err != nil {
		return fmt.Errorf("decode source pronunciation: %w", err)
	}

	var first []json.RawMessage
	if err := json.Unmarshal(block[0], &first); err != nil {
		return fmt.Errorf("decode sentence element: %w", err)
	}
	if len(first) < 2 {
		return fmt.Errorf("sentence element of %d positions: %w", len(first), ErrUnrecognizedShape)
	}
	if err := json.Unmarshal(first[1], &t.targetPron); err != nil {
		return fmt.Errorf("decode target pronunciation: %w", err)
	}
	return nil
}

// decodeDetection reads the detected source language code at payload[0][2],
// lower-cased.
func decodeDetection(payload []json.RawMessage) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("empty detection payload: %w", ErrUnrecognizedShape)
	}
	var head []json.RawMessage
	if err := json.Unmarshal(payload[0], &head); err != nil {
		return "", fmt.Errorf("decode detection section: %w", err)
	}
	if len(head) < 3 {
		return "", fmt.Errorf("detection section of %d positions: %w", len(head), ErrUnrecognizedShape)
	}
	var code string
	if err := json.Unmarshal(head[2], &code); err != nil {
		return "", fmt.Errorf("decode detected language code: %w", err)
	}
	return strings.ToLower(code), nil
}
