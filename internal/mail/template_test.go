package mail

import (
	"strings"
	"testing"
)

func sampleData() TemplateData {
	return TemplateData{
		PingURL:    "https://hc-ping.com/abc",
		Reason:     "ping to https://hc-ping.com/abc timed out after 3 attempts",
		Attempts:   3,
		SMTPServer: "smtp.example.com",
		Hostname:   "vps-01",
		Timestamp:  "2026-08-26 04:00:00",
	}
}

func TestRenderDefaultSubject(t *testing.T) {
	got, err := Render(DefaultSubjectTemplate, sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Watchdog ping failure on vps-01" {
		t.Errorf("subject = %q", got)
	}
}

func TestRenderDefaultBody(t *testing.T) {
	data := sampleData()
	got, err := Render(DefaultBodyTemplate, data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		data.PingURL,
		data.Reason,
		"after 3 attempts",
		"Email via smtp.example.com OK",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("body missing %q:\n%s", want, got)
		}
	}
}

func TestRenderBodySingularAttempt(t *testing.T) {
	data := sampleData()
	data.Attempts = 1
	got, err := Render(DefaultBodyTemplate, data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "after 1 attempt:") {
		t.Errorf("body = %q, want singular attempt", got)
	}
}

func TestRenderSprigFunctions(t *testing.T) {
	got, err := Render(`{{.Hostname | upper}}: {{.Reason | trunc 4}}`, sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "VPS-01: ping" {
		t.Errorf("rendered = %q", got)
	}
}

func TestRenderParseError(t *testing.T) {
	if _, err := Render(`{{.Oops`, sampleData()); err == nil {
		t.Fatal("expected parse error")
	}
}
