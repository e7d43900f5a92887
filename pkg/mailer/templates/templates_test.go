package templates

import (
	"strings"
	"testing"
	"time"
)

func TestRenderAccountTemplates(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	data := NewAccountData(Brand{AppName: "Acme"}, "Jo", "jo@example.com", at).ToMap()

	for _, name := range []string{Welcome, PasswordChanged} {
		subject, text, html, err := Render(name, data)
		if err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if !strings.Contains(subject, "Acme") {
			t.Fatalf("%s subject = %q", name, subject)
		}
		if !strings.Contains(text, "jo@example.com") || !strings.Contains(text, "01 March 2026") {
			t.Fatalf("%s text = %q", name, text)
		}
		if !strings.Contains(html, "<strong>jo@example.com</strong>") {
			t.Fatalf("%s html = %q", name, html)
		}
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	data := NewAccountData(Brand{AppName: "Acme"}, "<script>", "x@y.z", time.Now()).ToMap()
	_, _, html, err := Render(Welcome, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("expected first name to be escaped")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("verify_email", nil); err == nil {
		t.Fatal("expected unknown template error")
	}
}
