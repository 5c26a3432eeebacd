package email

// PreviewData holds sample values for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Username": "user3",
	},
}

// Preview renders templateName with its sample data.
func Preview(templateName Template) (string, error) {
	return Render(templateName, PreviewData[templateName])
}
