package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Markers framing the JSON result on the integration's stdout. These must
// match the integration binary byte for byte.
const (
	StartMarker = "=== DEEPSEEK RESULT ==="
	EndMarker   = "=== END DEEPSEEK RESULT ==="
)

// Extract locates the marker-framed payload in raw output and decodes it.
// Anything outside the markers (progress lines, stray diagnostics) is
// ignored. Extraction is all-or-nothing: a Result comes back only when both
// markers are present, in order, and the payload carries both fields.
func Extract(raw string) (Result, error) {
	start := strings.Index(raw, StartMarker)
	if start < 0 {
		return Result{}, fmt.Errorf("%w: missing %q", ErrMarkerNotFound, StartMarker)
	}

	rest := raw[start+len(StartMarker):]
	end := strings.Index(rest, EndMarker)
	if end < 0 {
		return Result{}, fmt.Errorf("%w: missing %q", ErrMarkerNotFound, EndMarker)
	}

	payload := strings.TrimSpace(rest[:end])

	var res Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	if res.Answer == "" || res.Reasoning == "" {
		return Result{}, fmt.Errorf("%w: answer and reasoning fields are required", ErrPayloadInvalid)
	}
	return res, nil
}
