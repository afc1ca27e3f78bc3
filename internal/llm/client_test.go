package llm

import "testing"

var _ Client = (*Anthropic)(nil)

func TestNewAnthropic(t *testing.T) {
	c := NewAnthropic("test-key")
	if c == nil {
		t.Fatal("NewAnthropic returned nil")
	}
	if c.client == nil {
		t.Fatal("underlying SDK client not initialized")
	}
}

func TestNewAnthropicWithoutKey(t *testing.T) {
	// Construction must succeed on ambient credentials alone.
	if c := NewAnthropic(""); c == nil {
		t.Fatal("NewAnthropic returned nil")
	}
}
