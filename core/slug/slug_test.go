package slug

import (
	"strings"
	"testing"
)

func TestGenerate_TitleDerived(t *testing.T) {
	got := Generate("", "Hello, World!", 42)
	if got != "hello-world" {
		t.Errorf("Expected 'hello-world', got %q", got)
	}
}

func TestGenerate_FallsBackToID(t *testing.T) {
	got := Generate("", "", 42)
	if got != "42" {
		t.Errorf("Expected '42', got %q", got)
	}
}

func TestGenerate_ExplicitWins(t *testing.T) {
	got := Generate("custom", "Hello", 42)
	if got != "custom" {
		t.Errorf("Expected 'custom', got %q", got)
	}
}

func TestGenerate_BlankExplicitIgnored(t *testing.T) {
	got := Generate("   ", "Hello", 42)
	if got != "hello" {
		t.Errorf("Expected 'hello', got %q", got)
	}
}

func TestGenerate_NoTitlePlaceholder(t *testing.T) {
	got := Generate("", "no title", 77)
	if got != "77" {
		t.Errorf("Expected '77', got %q", got)
	}
}

func TestGenerate_PunctuationOnlyTitle(t *testing.T) {
	got := Generate("", "?!...", 12)
	if got != "12" {
		t.Errorf("Expected '12', got %q", got)
	}
}

func TestGenerate_Truncation(t *testing.T) {
	title := strings.Repeat("a", 300)
	got := Generate("", title, 1)
	if len(got) != 200 {
		t.Errorf("Expected slug of length 200, got %d", len(got))
	}
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"árvíztűrő", "arvizturo"},
		{"café", "cafe"},
		{"naïve", "naive"},
		{"plain", "plain"},
		{"日本", "--"},
	}
	for _, tt := range tests {
		if got := Transliterate(tt.in); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
