package rendering

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	_ "embed"

	"github.com/jonathan/resume-mate/internal/types"
)

//go:embed resume.html.tmpl
var defaultTemplate string

// RenderHTML renders a profile into a standalone HTML document using the
// built-in template. Both master and tailored profiles render through this
// path since they share a shape.
func RenderHTML(profile *types.MasterProfile) (string, error) {
	return renderWithTemplate(profile, defaultTemplate)
}

// RenderHTMLFile renders a profile using a user-provided template file
// instead of the built-in one.
func RenderHTMLFile(profile *types.MasterProfile, templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to read template file %s", templatePath),
			Cause:   err,
		}
	}
	return renderWithTemplate(profile, string(content))
}

func renderWithTemplate(profile *types.MasterProfile, templateContent string) (string, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"dateRange": formatDateRange,
	}).Parse(templateContent)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template", Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, profile); err != nil {
		return "", &RenderError{Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}

// formatDateRange renders a YYYY-MM range as "Mar 2022 - Present" style text.
func formatDateRange(start, end string) string {
	return formatDate(start) + " - " + formatDateOrPresent(end)
}

func formatDateOrPresent(date string) string {
	if strings.TrimSpace(date) == "" {
		return "Present"
	}
	return formatDate(date)
}

func formatDate(date string) string {
	parsed, err := types.ParseDate(date)
	if err != nil {
		return date
	}
	return parsed.Format("Jan 2006")
}
