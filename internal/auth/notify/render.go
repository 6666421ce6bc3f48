package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type mailData struct {
	Name    string
	Link    string
	Expires string
}

func renderMail(purpose domain.TokenPurpose, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, purpose.String()+".html", data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", purpose, err)
	}
	return buf.String(), nil
}
