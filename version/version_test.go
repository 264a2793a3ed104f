package version

import "testing"

func TestFullFormatsCommitAndDate(t *testing.T) {
	restore := func(v, c, d string) {
		Version, Commit, Date = v, c, d
	}
	defer restore(Version, Commit, Date)

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"release", "1.2.3", "0123456789abcdef", "2026-08-28", "1.2.3 (0123456, built 2026-08-28)"},
		{"no date", "1.2.3", "0123456789abcdef", "unknown", "1.2.3 (0123456)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(tt.version, tt.commit, tt.date)
			if got := Full(); got != tt.want {
				t.Errorf("Full() = %q, want %q", got, tt.want)
			}
		})
	}
}
