package cli

import (
	"strings"
	"testing"
)

func TestColorizeEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want []string
	}{
		{
			name: "rename",
			msg:  "Renamed: 2022-2023 - Kentucky Basketball - Georgia.mp4 → UKMB 2023-01-05 - Georgia.mp4",
			want: []string{"Renamed:", "2022-2023 - Kentucky Basketball - Georgia.mp4", "→", "UKMB 2023-01-05 - Georgia.mp4"},
		},
		{
			name: "labelled",
			msg:  "Skipped: random_clip.mp4 (no matching sidecar)",
			want: []string{"Skipped:", "random_clip.mp4 (no matching sidecar)"},
		},
		{
			name: "plain",
			msg:  "Nothing to rename",
			want: []string{"Nothing to rename"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorizeEvent(tt.msg)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("colorizeEvent(%q) = %q, missing %q", tt.msg, got, w)
				}
			}
		})
	}
}
