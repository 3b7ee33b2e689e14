package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "docsync.yaml", `
docs_dir: documentation
source_repos:
  - ../repoA
  - ../repoB
repositories:
  - name: repoA
    url: https://github.com/org/repoA
    main_readme:
      source: repoA/README.md
      target: docs/repoA/index.md
    sub_readmes:
      - source: repoA/tools/README.md
        target: docs/repoA/tools.md
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "documentation", cfg.DocsDir)
	assert.Equal(t, "assets/images", cfg.AssetsDir)
	assert.Equal(t, DefaultMinContentLength, cfg.MinContentLength)
	assert.True(t, cfg.Pretty())
	assert.Equal(t, []string{"../repoA", "../repoB"}, cfg.SourceRepos)

	require.Len(t, cfg.Repositories, 1)
	repo := cfg.Repositories[0]
	assert.Equal(t, "repoA", repo.Name)
	require.NotNil(t, repo.MainReadme)
	assert.Equal(t, "repoA/README.md", repo.MainReadme.Source)
	require.Len(t, repo.SubReadmes, 1)
	assert.Equal(t, "docs/repoA/tools.md", repo.SubReadmes[0].Target)
}

func TestLoad_YAML_UnknownField(t *testing.T) {
	path := writeConfig(t, "docsync.yaml", "docs_root: docs\n")

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "docsync.json", `{
  "pretty_urls": false,
  "repositories": [
    {"name": "repoA", "main_readme": {"source": "repoA/README.md", "target": "docs/a.md"}}
  ]
}`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, cfg.Pretty())
	require.Len(t, cfg.Repositories, 1)
}

func TestLoad_HCL(t *testing.T) {
	path := writeConfig(t, "docsync.hcl", `
docs_dir = "docs"

repository "repoA" {
  url = "https://github.com/org/repoA"

  main_readme {
    source = "repoA/README.md"
    target = "docs/repoA/index.md"
  }

  sub_readme {
    source = "repoA/tools/README.md"
    target = "docs/repoA/tools.md"
  }
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, cfg.Repositories, 1)
	assert.Equal(t, "repoA", cfg.Repositories[0].Name)
	assert.Equal(t, "https://github.com/org/repoA", cfg.Repositories[0].URL)
	require.Len(t, cfg.Repositories[0].SubReadmes, 1)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError string
	}{
		{
			name: "missing_pair_source",
			content: `
repositories:
  - name: repoA
    main_readme:
      target: docs/a.md
`,
			wantError: "source is required",
		},
		{
			name: "missing_pair_target",
			content: `
repositories:
  - name: repoA
    sub_readmes:
      - source: repoA/README.md
`,
			wantError: "target is required",
		},
		{
			name:      "missing_repo_name",
			content:   "repositories:\n  - url: https://example.com\n",
			wantError: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "docsync.yaml", tt.content)
			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfig_RepositoryURL(t *testing.T) {
	cfg := &Config{
		Repositories: []Repository{
			{Name: "repoA", URL: "https://github.com/org/repoA"},
			{Name: "repoB"},
		},
	}

	assert.Equal(t,
		"https://github.com/org/repoA/blob/main/tools/README.md",
		cfg.RepositoryURL("repoA/tools/README.md"))
	assert.Equal(t, "#", cfg.RepositoryURL("repoB/README.md"))
	assert.Equal(t, "#", cfg.RepositoryURL("unknown/README.md"))
}
