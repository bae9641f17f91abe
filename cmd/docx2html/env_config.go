package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-docx2html/internal/config"
)

const envPrefix = "DOCX2HTML_"

// envConfig holds configuration from environment variables, for CI jobs and
// .env files that should not need a YAML file.
type envConfig struct {
	ConfigPath   string // DOCX2HTML_CONFIG
	InputDir     string // DOCX2HTML_INPUT_DIR
	OutputDir    string // DOCX2HTML_OUTPUT_DIR
	GuidePattern string // DOCX2HTML_GUIDE_PATTERN
	Style        string // DOCX2HTML_STYLE
	Template     string // DOCX2HTML_TEMPLATE
	AssetPath    string // DOCX2HTML_ASSET_PATH
	Language     string // DOCX2HTML_LANGUAGE
	SiteName     string // DOCX2HTML_SITE_NAME
	Footer       string // DOCX2HTML_FOOTER
	HubHref      string // DOCX2HTML_HUB_HREF
	Navigation   string // DOCX2HTML_NAVIGATION
	Timeout      string // DOCX2HTML_TIMEOUT
}

// knownEnvVars lists valid DOCX2HTML_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"DOCX2HTML_CONFIG":        true,
	"DOCX2HTML_INPUT_DIR":     true,
	"DOCX2HTML_OUTPUT_DIR":    true,
	"DOCX2HTML_GUIDE_PATTERN": true,
	"DOCX2HTML_STYLE":         true,
	"DOCX2HTML_TEMPLATE":      true,
	"DOCX2HTML_ASSET_PATH":    true,
	"DOCX2HTML_LANGUAGE":      true,
	"DOCX2HTML_SITE_NAME":     true,
	"DOCX2HTML_FOOTER":        true,
	"DOCX2HTML_HUB_HREF":      true,
	"DOCX2HTML_NAVIGATION":    true,
	"DOCX2HTML_TIMEOUT":       true,
	"DOCX2HTML_CONTAINER":     true, // read by doctor
}

// loadEnvConfig reads the DOCX2HTML_* variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:   os.Getenv("DOCX2HTML_CONFIG"),
		InputDir:     os.Getenv("DOCX2HTML_INPUT_DIR"),
		OutputDir:    os.Getenv("DOCX2HTML_OUTPUT_DIR"),
		GuidePattern: os.Getenv("DOCX2HTML_GUIDE_PATTERN"),
		Style:        os.Getenv("DOCX2HTML_STYLE"),
		Template:     os.Getenv("DOCX2HTML_TEMPLATE"),
		AssetPath:    os.Getenv("DOCX2HTML_ASSET_PATH"),
		Language:     os.Getenv("DOCX2HTML_LANGUAGE"),
		SiteName:     os.Getenv("DOCX2HTML_SITE_NAME"),
		Footer:       os.Getenv("DOCX2HTML_FOOTER"),
		HubHref:      os.Getenv("DOCX2HTML_HUB_HREF"),
		Navigation:   os.Getenv("DOCX2HTML_NAVIGATION"),
		Timeout:      os.Getenv("DOCX2HTML_TIMEOUT"),
	}
}

// warnUnknownEnvVars reports DOCX2HTML_* variables nobody reads.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config fields that are still empty, so that
// CLI flags > env vars > config file > defaults. Flags are merged afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	fill := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}
	fill(&cfg.Input.DefaultDir, env.InputDir)
	fill(&cfg.Output.DefaultDir, env.OutputDir)
	fill(&cfg.Output.GuidePattern, env.GuidePattern)
	fill(&cfg.Style.Name, env.Style)
	fill(&cfg.Style.Template, env.Template)
	fill(&cfg.Assets.BasePath, env.AssetPath)
	fill(&cfg.Site.Language, env.Language)
	fill(&cfg.Site.Name, env.SiteName)
	fill(&cfg.Site.Footer, env.Footer)
	fill(&cfg.Passes.Navigation, env.Navigation)
	fill(&cfg.PDF.Timeout, env.Timeout)

	// The hub link has a non-empty default, so the variable replaces it
	// unless a config file changed it.
	if env.HubHref != "" && (cfg.Site.HubHref == "" || cfg.Site.HubHref == config.DefaultConfig().Site.HubHref) {
		cfg.Site.HubHref = env.HubHref
	}
}
