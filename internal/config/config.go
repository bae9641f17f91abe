// Package config loads the YAML configuration of the guide generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docx2html/internal/fileutil"
	"github.com/alnah/go-docx2html/internal/layout"
	"github.com/alnah/go-docx2html/internal/yamlutil"
)

// AppDir is the directory name searched under the user config directory.
const AppDir = "go-docx2html"

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength    = 100
	MaxTextLength    = 500
	MaxURLLength     = 2048
	MaxPatternLength = 100
	MaxMarkerLength  = 50
	MaxMarkers       = 20
)

// Config holds all configuration for guide generation.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Site    SiteConfig    `yaml:"site"`
	Style   StyleConfig   `yaml:"style"`
	Passes  PassesConfig  `yaml:"passes"`
	Extract ExtractConfig `yaml:"extract"`
	Assets  AssetsConfig  `yaml:"assets"`
	PDF     PDFConfig     `yaml:"pdf"`
	Watch   WatchConfig   `yaml:"watch"`
	Review  ReviewConfig  `yaml:"review"`
}

// InputConfig defines where session documents are read.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines where guides are written.
type OutputConfig struct {
	DefaultDir   string `yaml:"defaultDir"`   // empty = next to the sources
	GuidePattern string `yaml:"guidePattern"` // {N} session, {M} module
	Markdown     bool   `yaml:"markdown"`     // write a .md export next to each guide
	PDF          bool   `yaml:"pdf"`          // write a .pdf export next to each guide
}

// SiteConfig defines the site around the guides.
type SiteConfig struct {
	Name             string `yaml:"name"`
	Language         string `yaml:"language"`
	Footer           string `yaml:"footer"` // may use {year} and {date:FORMAT}
	HubHref          string `yaml:"hubHref"`
	PresentationHref string `yaml:"presentationHref"` // {M} and {N} expanded; empty = no link
	DownloadLink     *bool  `yaml:"downloadLink"`     // nil = enabled
}

// StyleConfig selects the embedded or custom assets.
type StyleConfig struct {
	Name     string `yaml:"name"`     // style name or CSS file path
	Template string `yaml:"template"` // template name or HTML file path
}

// PassesConfig selects post-processing passes.
type PassesConfig struct {
	Enabled         []string `yaml:"enabled"`    // empty = all, in canonical order
	Navigation      string   `yaml:"navigation"` // grouped or flat
	GroupByCategory bool     `yaml:"groupByCategory"`
}

// ExtractConfig tunes paragraph classification.
type ExtractConfig struct {
	HeadingStyles     []string `yaml:"headingStyles"`
	MinBoldLength     int      `yaml:"minBoldLength"`
	SubheadingMarkers []string `yaml:"subheadingMarkers"`
	TitleMarkers      []string `yaml:"titleMarkers"`
	TitleNoise        []string `yaml:"titleNoise"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "500ms"
}

// ReviewConfig tunes the review checks.
type ReviewConfig struct {
	MinSize     int64 `yaml:"minSize"`
	MinSections int   `yaml:"minSections"`
}

// Validate checks field lengths and values. Called by LoadConfig, and
// available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.name", c.Site.Name, MaxNameLength},
		{"site.language", c.Site.Language, MaxMarkerLength},
		{"site.footer", c.Site.Footer, MaxTextLength},
		{"site.hubHref", c.Site.HubHref, MaxURLLength},
		{"site.presentationHref", c.Site.PresentationHref, MaxURLLength},
		{"style.name", c.Style.Name, MaxURLLength},
		{"style.template", c.Style.Template, MaxURLLength},
		{"output.guidePattern", c.Output.GuidePattern, MaxPatternLength},
		{"assets.basePath", c.Assets.BasePath, MaxURLLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	lists := []struct {
		name   string
		values []string
	}{
		{"passes.enabled", c.Passes.Enabled},
		{"extract.headingStyles", c.Extract.HeadingStyles},
		{"extract.subheadingMarkers", c.Extract.SubheadingMarkers},
		{"extract.titleMarkers", c.Extract.TitleMarkers},
		{"extract.titleNoise", c.Extract.TitleNoise},
	}
	for _, l := range lists {
		if len(l.values) > MaxMarkers {
			return fmt.Errorf("%w: %s has %d entries (max %d)", ErrInvalidValue, l.name, len(l.values), MaxMarkers)
		}
		for i, v := range l.values {
			if err := validateFieldLength(fmt.Sprintf("%s[%d]", l.name, i), v, MaxMarkerLength); err != nil {
				return err
			}
		}
	}

	if c.Output.GuidePattern != "" {
		if _, err := layout.New(c.Output.GuidePattern); err != nil {
			return fmt.Errorf("output.guidePattern: %w", err)
		}
	}
	switch c.Passes.Navigation {
	case "", "grouped", "flat":
	default:
		return fmt.Errorf("%w: passes.navigation %q (must be grouped or flat)", ErrInvalidValue, c.Passes.Navigation)
	}
	if c.Extract.MinBoldLength < 0 {
		return fmt.Errorf("%w: extract.minBoldLength must be >= 0, got %d", ErrInvalidValue, c.Extract.MinBoldLength)
	}
	if c.Review.MinSize < 0 || c.Review.MinSections < 0 {
		return fmt.Errorf("%w: review limits must be >= 0", ErrInvalidValue)
	}
	if _, err := ParseDuration("pdf.timeout", c.PDF.Timeout); err != nil {
		return err
	}
	if _, err := ParseDuration("watch.debounce", c.Watch.Debounce); err != nil {
		return err
	}
	return nil
}

// ParseDuration parses a positive Go duration. Empty yields zero.
func ParseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s %q (use a positive duration like 30s)", ErrInvalidValue, field, value)
	}
	return d, nil
}

// DownloadEnabled reports whether guides link to their source document.
func (s SiteConfig) DownloadEnabled() bool {
	return s.DownloadLink == nil || *s.DownloadLink
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			HubHref: "../../index.html",
		},
	}
}

// LoadConfig loads configuration from a file path or config name. A value
// with a path separator is a file path; otherwise it is searched as
// <name>.yaml or <name>.yml in the current directory, then in the user
// config directory under AppDir. There is no silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
