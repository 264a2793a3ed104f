package cmd

import (
	"testing"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{
		"extract": false,
		"volumes": false,
		"inspect": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestExtractCmdFlagDefaults(t *testing.T) {
	t.Setenv("APPCARVE_MARKER", "Fabrikam.Backup")
	t.Setenv("APPCARVE_WORKERS", "9")

	cmd := NewExtractCmd()

	if got := cmd.Flags().Lookup("marker").DefValue; got != "Fabrikam.Backup" {
		t.Errorf("marker default = %q, want env-provided Fabrikam.Backup", got)
	}
	if got := cmd.Flags().Lookup("workers").DefValue; got != "9" {
		t.Errorf("workers default = %q, want 9", got)
	}
	if got := cmd.Flags().Lookup("output").DefValue; got != "carved.zip" {
		t.Errorf("output default = %q, want carved.zip", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{
			name: "bytes",
			n:    512,
			want: "512 B",
		},
		{
			name: "kibibytes",
			n:    524288,
			want: "512.0 KiB",
		},
		{
			name: "gibibytes",
			n:    1 << 31,
			want: "2.0 GiB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSize(tt.n); got != tt.want {
				t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}
