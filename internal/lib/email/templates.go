package email

import "embed"

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS
