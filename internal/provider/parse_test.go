package provider

import (
	"errors"
	"testing"
)

func TestExtractRoundTrip(t *testing.T) {
	raw := "=== DEEPSEEK RESULT ===\n" +
		`{"answer": "4", "reasoning": "Two plus two equals four."}` + "\n" +
		"=== END DEEPSEEK RESULT ===\n"

	res, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if res.Answer != "4" {
		t.Errorf("Answer = %q, want %q", res.Answer, "4")
	}
	if res.Reasoning != "Two plus two equals four." {
		t.Errorf("Reasoning = %q, want %q", res.Reasoning, "Two plus two equals four.")
	}
}

func TestExtractIgnoresSurroundingOutput(t *testing.T) {
	raw := "Calling DeepSeek via OpenRouter...\n" +
		"some progress noise\n" +
		"=== DEEPSEEK RESULT ===\n" +
		`{"answer":"yes","reasoning":"because"}` + "\n" +
		"=== END DEEPSEEK RESULT ===\n" +
		"trailing diagnostics\n"

	res, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if res.Answer != "yes" || res.Reasoning != "because" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestExtractMissingStartMarker(t *testing.T) {
	raw := `{"answer":"4","reasoning":"math"}` + "\n=== END DEEPSEEK RESULT ===\n"

	_, err := Extract(raw)
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("err = %v, want ErrMarkerNotFound", err)
	}
}

func TestExtractMissingEndMarker(t *testing.T) {
	raw := "=== DEEPSEEK RESULT ===\n" + `{"answer":"4","reasoning":"math"}`

	_, err := Extract(raw)
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("err = %v, want ErrMarkerNotFound", err)
	}
}

func TestExtractEndMarkerBeforeStart(t *testing.T) {
	raw := "=== END DEEPSEEK RESULT ===\n" +
		"=== DEEPSEEK RESULT ===\n" +
		`{"answer":"4","reasoning":"math"}`

	_, err := Extract(raw)
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("err = %v, want ErrMarkerNotFound", err)
	}
}

func TestExtractMalformedPayload(t *testing.T) {
	raw := "=== DEEPSEEK RESULT ===\nnot json at all\n=== END DEEPSEEK RESULT ===\n"

	_, err := Extract(raw)
	if !errors.Is(err, ErrPayloadInvalid) {
		t.Fatalf("err = %v, want ErrPayloadInvalid", err)
	}
}

func TestExtractPayloadMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"no reasoning", `{"answer":"4"}`},
		{"no answer", `{"reasoning":"math"}`},
		{"empty strings", `{"answer":"","reasoning":""}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := "=== DEEPSEEK RESULT ===\n" + tc.payload + "\n=== END DEEPSEEK RESULT ===\n"
			_, err := Extract(raw)
			if !errors.Is(err, ErrPayloadInvalid) {
				t.Fatalf("err = %v, want ErrPayloadInvalid", err)
			}
		})
	}
}
