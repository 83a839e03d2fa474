// Package config loads the immutable site configuration. The Config is
// constructed once at startup and passed by reference; nothing in the
// generator mutates it after Load returns.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the site-wide configuration.
type Config struct {
	// SiteTitle and SiteSubtitle appear in page chrome and feeds.
	SiteTitle    string `yaml:"site_title"`
	SiteSubtitle string `yaml:"site_subtitle"`

	// BasePath is the site-absolute prefix for every generated URL,
	// e.g. "/blog". BaseAuthority is the scheme+host used where links
	// must be absolute (feed identifiers), e.g. "https://example.net".
	BasePath      string `yaml:"base_path"`
	BaseAuthority string `yaml:"base_authority"`

	// SourceDir holds the post directories; OutputDir is the generation
	// root the reconciler owns.
	SourceDir string `yaml:"source_dir"`
	OutputDir string `yaml:"output_dir"`

	// ArchiveIDSecret keys the archive-page identifiers. High-entropy,
	// never published; changing it moves every archive URL.
	ArchiveIDSecret string `yaml:"archive_id_secret"`

	// Timezone for human-readable timestamps on pages. Defaults to the
	// system local zone.
	Timezone string `yaml:"timezone"`

	// AuthorName, AuthorURI, and AuthorBio fill the feed author element
	// and the post-page sidebar.
	AuthorName string `yaml:"author_name"`
	AuthorURI  string `yaml:"author_uri"`
	AuthorBio  string `yaml:"author_bio"`

	// IndexIntroHTML is trusted HTML shown above the listing on the
	// front page.
	IndexIntroHTML string `yaml:"index_intro_html"`

	loc *time.Location
}

var knownKeys = []string{
	"site_title", "site_subtitle", "base_path", "base_authority",
	"source_dir", "output_dir", "archive_id_secret", "timezone",
	"author_name", "author_uri", "author_bio", "index_intro_html",
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Unknown keys are warned about, not fatal: a config written for a
	// newer version should still generate.
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err == nil {
		var unknown []string
		for key := range keys {
			if !slices.Contains(knownKeys, key) {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			slices.Sort(unknown)
			slog.Warn("unrecognized configuration keys", "path", path, "keys", unknown)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	for key, val := range map[string]string{
		"archive_id_secret": c.ArchiveIDSecret,
		"source_dir":        c.SourceDir,
		"output_dir":        c.OutputDir,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing required keys: %v", missing)
	}

	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		c.loc = loc
	} else {
		c.loc = time.Local
	}
	return nil
}

// Location returns the display timezone.
func (c *Config) Location() *time.Location { return c.loc }

// MainFeedPath is the site-absolute path of the aggregate posts feed.
func (c *Config) MainFeedPath() string { return c.BasePath + "/posts.atom" }
