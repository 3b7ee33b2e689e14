package text

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefReplacer_Replace(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		updates      map[string]string
		want         string
		wantChanges  int
		wantModified bool
	}{
		{
			name:    "single_reference",
			content: "![diagram](diagram.png)",
			updates: map[string]string{
				"diagram.png": "../assets/images/diagram.png",
			},
			want:         "![diagram](../assets/images/diagram.png)",
			wantChanges:  1,
			wantModified: true,
		},
		{
			name:    "repeated_reference",
			content: "![a](img.png) and <img src=\"img.png\">",
			updates: map[string]string{
				"img.png": "assets/images/img.png",
			},
			want:         "![a](assets/images/img.png) and <img src=\"assets/images/img.png\">",
			wantChanges:  2,
			wantModified: true,
		},
		{
			name:    "longest_key_first_avoids_partial_match",
			content: "![a](sub/img.png) ![b](img.png)",
			updates: map[string]string{
				"img.png":     "assets/img.png",
				"sub/img.png": "assets/sub-img.png",
			},
			// The longer key must be consumed before the shorter key can
			// touch its text.
			want:         "![a](assets/sub-img.png) ![b](assets/img.png)",
			wantChanges:  2,
			wantModified: true,
		},
		{
			name:    "replacement_output_never_rescanned",
			content: "![a](sub/img.png) ![b](img.png)",
			updates: map[string]string{
				"sub/img.png": "../assets/images/img.png",
				"img.png":     "assets/images/img.png",
			},
			// Both replacement values end with "img.png"; the shorter key
			// must not match inside text the longer key just produced.
			want:         "![a](../assets/images/img.png) ![b](assets/images/img.png)",
			wantChanges:  2,
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "plain text",
			updates: map[string]string{
				"missing.png": "other.png",
			},
			want:         "plain text",
			wantChanges:  0,
			wantModified: false,
		},
		{
			name:         "empty_updates",
			content:      "![a](img.png)",
			updates:      map[string]string{},
			want:         "![a](img.png)",
			wantChanges:  0,
			wantModified: false,
		},
		{
			name:    "empty_key_ignored",
			content: "abc",
			updates: map[string]string{
				"": "x",
			},
			want:         "abc",
			wantChanges:  0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRefReplacer()
			result := r.Replace(context.Background(), tt.content, tt.updates)

			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.OriginalContent)
			assert.Equal(t, tt.want, result.ModifiedContent)
			assert.Equal(t, tt.wantChanges, result.Changes)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestRefReplacer_Replace_OverlappingKeysNeverCorrupt(t *testing.T) {
	// Corruption mode being guarded against: replacing "img.png" first would
	// turn "sub/img.png" into "sub/<new>" and the longer key would no longer
	// match anywhere.
	content := "sub/img.png img.png sub/img.png"
	updates := map[string]string{
		"img.png":     "A.png",
		"sub/img.png": "B.png",
	}

	result := NewRefReplacer().Replace(context.Background(), content, updates)
	assert.Equal(t, "B.png A.png B.png", result.ModifiedContent)
	assert.Equal(t, 3, result.Changes)
}
