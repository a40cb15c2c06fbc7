package roster

import "testing"

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`Rob "Bob" Harvey (wk)`, "Rob Harvey"},
		{"J Smith (c)", "J Smith"},
		{"  Alice   Brown  ", "Alice Brown"},
		{"O'Connor", "OConnor"},
	}
	for _, tc := range tests {
		if got := CleanName(tc.in); got != tc.want {
			t.Fatalf("CleanName(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Rob Harvey", "rob harvey"},
		{"J. R. Smith", "j r smith"},
		{"  MULTI   SPACE ", "multi space"},
	}
	for _, tc := range tests {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestSplitName(t *testing.T) {
	t.Parallel()

	first, last := SplitName("Rob James Harvey")
	if first != "Rob" || last != "James Harvey" {
		t.Fatalf("unexpected split: first=%q last=%q", first, last)
	}

	first, last = SplitName("Harvey")
	if first != "Harvey" || last != "Harvey" {
		t.Fatalf("single token should fill both parts: first=%q last=%q", first, last)
	}
}
