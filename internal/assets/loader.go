package assets

// AssetLoader loads CSS styles and HTML templates by name, without extension.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound for unknown styles.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns ErrTemplateNotFound for unknown templates.
	LoadTemplate(name string) (string, error)
}

// Built-in asset names.
const (
	DefaultStyleName    = "premium"
	MinimalStyleName    = "minimal"
	DefaultTemplateName = "guide"
)
