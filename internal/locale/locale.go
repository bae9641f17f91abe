// Package locale provides the interface strings of generated guides.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/alnah/go-docx2html/internal/extract"
	"github.com/alnah/go-docx2html/internal/render"
	"github.com/alnah/go-docx2html/internal/yamlutil"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "pt"

// ErrUnsupportedLanguage indicates no message file exists for a language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed messages/*.yaml
var messages embed.FS

// Localizer resolves message ids for one language.
type Localizer struct {
	lang string
	loc  *i18n.Localizer
}

// New returns a Localizer for lang ("pt", "en"); empty means DefaultLanguage.
func New(lang string) (*Localizer, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	lang = strings.ToLower(lang)
	if !isSupported(lang) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedLanguage, lang, strings.Join(Supported(), ", "))
	}

	bundle := i18n.NewBundle(language.Portuguese)
	bundle.RegisterUnmarshalFunc("yaml", yamlutil.Unmarshal)
	for _, name := range Supported() {
		data, err := messages.ReadFile("messages/" + name + ".yaml")
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, name+".yaml"); err != nil {
			return nil, fmt.Errorf("parsing %s messages: %w", name, err)
		}
	}

	return &Localizer{lang: lang, loc: i18n.NewLocalizer(bundle, lang, DefaultLanguage)}, nil
}

// Lang returns the language code of l.
func (l *Localizer) Lang() string { return l.lang }

// T returns the message for id, executed with data. Unknown ids are
// returned as is so a missing translation shows up in the page.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// Labels returns the page interface labels.
func (l *Localizer) Labels() render.Labels {
	return render.Labels{
		BackToHub:        l.T("BackToHub", nil),
		ViewPresentation: l.T("ViewPresentation", nil),
		TrainerGuide:     l.T("TrainerGuide", nil),
		GuideSubtitle:    l.T("GuideSubtitle", nil),
		OriginalDocument: l.T("OriginalDocument", nil),
		DownloadHint:     l.T("DownloadHint", nil),
		DownloadWord:     l.T("DownloadWord", nil),
		Navigation:       l.T("Navigation", nil),
		ClickToNavigate:  l.T("ClickToNavigate", nil),
		ReadingProgress:  l.T("ReadingProgress", nil),
		PercentRead:      l.T("PercentRead", nil),
	}
}

// Category returns the display name of a navigation category.
func (l *Localizer) Category(c extract.Category) string {
	return l.T(categoryMessageID(c), nil)
}

// ModuleTitle returns e.g. "Módulo 2".
func (l *Localizer) ModuleTitle(n int) string {
	return l.T("ModuleTitle", map[string]any{"Number": n})
}

// SessionTitle returns e.g. "Sessão 4".
func (l *Localizer) SessionTitle(n int) string {
	return l.T("SessionTitle", map[string]any{"Number": n})
}

// PageTitle returns the document <title> for a session title and site name.
func (l *Localizer) PageTitle(session, site string) string {
	return l.T("PageTitle", map[string]any{"Session": session, "Site": site})
}

// Supported lists the embedded languages, sorted.
func Supported() []string {
	entries, err := fs.ReadDir(messages, "messages")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(out)
	return out
}

func isSupported(lang string) bool {
	for _, s := range Supported() {
		if s == lang {
			return true
		}
	}
	return false
}

func categoryMessageID(c extract.Category) string {
	s := string(c)
	if s == "" {
		s = string(extract.CategoryOther)
	}
	return "Category" + strings.ToUpper(s[:1]) + s[1:]
}
