package strutil

import "testing"

func TestKebab(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaced words", "Ana Silva", "ana-silva"},
		{"camel case", "anaSilva", "ana-silva"},
		{"pascal case", "ServiceStep", "service-step"},
		{"underscores", "ana_silva", "ana-silva"},
		{"already kebab", "ana-silva", "ana-silva"},
		{"single word", "user", "user"},
		{"mixed separators", "Ana  Silva_Santos", "ana-silva-santos"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Kebab(tt.input); got != tt.expected {
				t.Errorf("Kebab(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
