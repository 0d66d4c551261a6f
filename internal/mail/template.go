package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Default templates for the alert email. The body notes that email delivery
// itself worked, so the broken monitoring channel is the only open issue.
const (
	DefaultSubjectTemplate = `Watchdog ping failure on {{.Hostname}}`

	DefaultBodyTemplate = `Ping to {{.PingURL}} failed after {{.Attempts}} attempt{{if ne .Attempts 1}}s{{end}}:
"{{.Reason}}"

Email via {{.SMTPServer}} OK; expect false alerts from the monitoring
service until the ping recovers.

-- vigil on {{.Hostname}}, {{.Timestamp}}`
)

// TemplateData holds all data available to the subject and body templates.
type TemplateData struct {
	PingURL    string
	Reason     string
	Attempts   int
	SMTPServer string
	Hostname   string
	Timestamp  string
}

// Render executes a Go text/template string with Sprig functions.
func Render(tmplStr string, data TemplateData) (string, error) {
	t, err := template.New("mail").Funcs(sprig.TxtFuncMap()).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
