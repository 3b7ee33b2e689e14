// Package config loads the declarative synchronization configuration.
package config

import (
	"path"
	"strings"

	"github.com/docsync-dev/docsync/pkg/locate"
	"github.com/docsync-dev/docsync/pkg/paths"
	"gitlab.com/tozd/go/errors"
)

// 📏 DefaultMinContentLength is the body-size threshold below which a synced
// document is reported as needing content
const DefaultMinContentLength = 500

// 📄 ReadmePair maps a source README to its documentation target
type ReadmePair struct {
	Source string `json:"source" yaml:"source" hcl:"source"`
	Target string `json:"target" yaml:"target" hcl:"target"`
}

// 📦 Repository describes one sibling repository contributing READMEs
type Repository struct {
	Name       string       `json:"name" yaml:"name" hcl:"name,label"`
	URL        string       `json:"url,omitempty" yaml:"url,omitempty" hcl:"url,optional"`
	MainReadme *ReadmePair  `json:"main_readme,omitempty" yaml:"main_readme,omitempty" hcl:"main_readme,block"`
	SubReadmes []ReadmePair `json:"sub_readmes,omitempty" yaml:"sub_readmes,omitempty" hcl:"sub_readme,block"`
}

// 📚 Config is the complete configuration for both tools
type Config struct {
	// DocsDir is the documentation root, relative to the workspace.
	DocsDir string `json:"docs_dir,omitempty" yaml:"docs_dir,omitempty" hcl:"docs_dir,optional"`

	// AssetsDir is the flat asset directory, relative to DocsDir.
	AssetsDir string `json:"assets_dir,omitempty" yaml:"assets_dir,omitempty" hcl:"assets_dir,optional"`

	// PrettyURLs indicates the site generator serves page.md as
	// page/index.html, shifting relative depth by one. Defaults to true.
	PrettyURLs *bool `json:"pretty_urls,omitempty" yaml:"pretty_urls,omitempty" hcl:"pretty_urls,optional"`

	// MinContentLength is the needs-content threshold in characters.
	MinContentLength int `json:"min_content_length,omitempty" yaml:"min_content_length,omitempty" hcl:"min_content_length,optional"`

	// SourceRepos are the candidate repository roots searched for images,
	// in priority order.
	SourceRepos []string `json:"source_repos,omitempty" yaml:"source_repos,omitempty" hcl:"source_repos,optional"`

	// SkipPatterns are directory-name globs pruned while walking source
	// repositories.
	SkipPatterns []string `json:"skip_patterns,omitempty" yaml:"skip_patterns,omitempty" hcl:"skip_patterns,optional"`

	// PlacementRules override the built-in asset routing rules.
	PlacementRules []paths.PlacementRule `json:"placement_rules,omitempty" yaml:"placement_rules,omitempty" hcl:"placement_rule,block"`

	// Repositories drive the README synchronizer.
	Repositories []Repository `json:"repositories,omitempty" yaml:"repositories,omitempty" hcl:"repository,block"`

	location string
}

// Default returns a configuration with every knob at its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Location returns the path the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// Pretty reports whether pretty-URL depth compensation is enabled
func (cfg *Config) Pretty() bool {
	return cfg.PrettyURLs == nil || *cfg.PrettyURLs
}

// Rules returns the effective placement rules
func (cfg *Config) Rules() []paths.PlacementRule {
	if len(cfg.PlacementRules) > 0 {
		return cfg.PlacementRules
	}
	return paths.DefaultPlacementRules()
}

// RepositoryURL returns the hosted URL for a workspace-relative source path
// by matching its first segment against the configured repositories.
// Unknown repositories degrade to "#" so the attribution link stays valid.
func (cfg *Config) RepositoryURL(sourceRel string) string {
	parts := strings.Split(path.Clean(strings.ReplaceAll(sourceRel, "\\", "/")), "/")
	if len(parts) == 0 {
		return "#"
	}
	for _, repo := range cfg.Repositories {
		if repo.Name == parts[0] && repo.URL != "" {
			return repo.URL + "/blob/main/" + strings.Join(parts[1:], "/")
		}
	}
	return "#"
}

// 🔍 Validate checks the configuration and fills defaults
func (cfg *Config) Validate() error {
	for i, repo := range cfg.Repositories {
		if repo.Name == "" {
			return errors.Errorf("repository %d: name is required", i)
		}
		if repo.MainReadme != nil {
			if err := repo.MainReadme.validate(); err != nil {
				return errors.Errorf("repository %s: main_readme: %w", repo.Name, err)
			}
		}
		for j, sub := range repo.SubReadmes {
			if err := sub.validate(); err != nil {
				return errors.Errorf("repository %s: sub_readme %d: %w", repo.Name, j, err)
			}
		}
	}

	cfg.applyDefaults()
	return nil
}

func (p ReadmePair) validate() error {
	if p.Source == "" {
		return errors.Errorf("source is required")
	}
	if p.Target == "" {
		return errors.Errorf("target is required")
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DocsDir == "" {
		cfg.DocsDir = "docs"
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = "assets/images"
	}
	if cfg.MinContentLength == 0 {
		cfg.MinContentLength = DefaultMinContentLength
	}
	if cfg.SkipPatterns == nil {
		cfg.SkipPatterns = locate.DefaultSkipPatterns
	}
}
