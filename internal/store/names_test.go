package store

import "testing"

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jiří", "Jiri"},
		{"Novák", "Novak"},
		{"plain", "plain"},
		{"Ångström", "Angstrom"},
		{"Øre", "Øre"}, // stroked letters carry no combining mark
		{"", ""},
	}

	for _, tc := range tests {
		if got := RemoveDiacritics(tc.input); got != tc.expected {
			t.Errorf("RemoveDiacritics(%q) = %q; want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizePersonName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jan Novák", "jan novak"},
		{"jan-novak", "jan novak"},
		{"ALICE", "alice"},
		{"Marie-Thérèse", "marie therese"},
	}

	for _, tc := range tests {
		if got := NormalizePersonName(tc.input); got != tc.expected {
			t.Errorf("NormalizePersonName(%q) = %q; want %q", tc.input, got, tc.expected)
		}
	}
}
