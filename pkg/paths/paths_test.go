package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := &Resolver{
		DocsDir:   "/work/docs",
		AssetsDir: "assets/images",
		Rules:     DefaultPlacementRules(),
	}

	tests := []struct {
		name        string
		sourceImage string
		docFile     string
		want        string
	}{
		{
			name:        "fallback_flat_assets",
			sourceImage: "/work/repoA/assets/diagram.png",
			docFile:     "/work/docs/guide.md",
			want:        filepath.Join("/work/docs", "assets", "images", "diagram.png"),
		},
		{
			name:        "tutorial_bundle_from_howto_doc",
			sourceImage: "/work/repoA/tutorials/assets/bring_your_own_xr/headset.png",
			docFile:     "/work/docs/how-to/setup.md",
			want:        filepath.Join("/work/docs", "how-to", "assets", "resources", "headset.png"),
		},
		{
			name:        "tutorial_bundle_from_tutorial_doc",
			sourceImage: "/work/repoA/tutorials/assets/bring_your_own_xr/headset.png",
			docFile:     "/work/docs/tutorials/setup.md",
			want:        filepath.Join("/work/docs", "tutorials", "resources", "headset.png"),
		},
		{
			name:        "sensor_simulation_docs_image",
			sourceImage: "/work/repoB-sensor-simulation/ultrasound/docs/probe.png",
			docFile:     "/work/docs/reference/overview.md",
			want:        filepath.Join("/work/docs", "reference", "sensor-simulation", "docs", "probe.png"),
		},
		{
			name: "sensor_simulation_outside_docs_parent_falls_back",
			// Parent dir is not "docs", so the special case does not apply.
			sourceImage: "/work/repoB-sensor-simulation/ultrasound/media/probe.png",
			docFile:     "/work/docs/reference/overview.md",
			want:        filepath.Join("/work/docs", "assets", "images", "probe.png"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.sourceImage, tt.docFile))
		})
	}
}

func TestRelative(t *testing.T) {
	tests := []struct {
		name      string
		imagePath string
		docFile   string
		want      string
	}{
		{
			name:      "sibling_directory",
			imagePath: "/work/docs/assets/images/diagram.png",
			docFile:   "/work/docs/guide.md",
			want:      "assets/images/diagram.png",
		},
		{
			name:      "parent_steps",
			imagePath: "/work/docs/assets/images/diagram.png",
			docFile:   "/work/docs/how-to/robots/teleop.md",
			want:      "../../assets/images/diagram.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relative(tt.imagePath, tt.docFile))
		})
	}
}

func TestAssetHref(t *testing.T) {
	tests := []struct {
		name          string
		targetRelDocs string
		pretty        bool
		want          string
	}{
		{
			name:          "pretty_urls_add_one_step",
			targetRelDocs: "how-to/robots/teleop.md",
			pretty:        true,
			want:          "../../../assets/images/d.png",
		},
		{
			name:          "plain_urls_use_directory_depth",
			targetRelDocs: "how-to/robots/teleop.md",
			pretty:        false,
			want:          "../../assets/images/d.png",
		},
		{
			name:          "top_level_pretty",
			targetRelDocs: "index.md",
			pretty:        true,
			want:          "../assets/images/d.png",
		},
		{
			name:          "top_level_plain",
			targetRelDocs: "index.md",
			pretty:        false,
			want:          "assets/images/d.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssetHref(tt.targetRelDocs, "assets/images", "d.png", tt.pretty))
		})
	}
}
