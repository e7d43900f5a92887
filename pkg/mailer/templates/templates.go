package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const (
	Welcome         = "welcome"
	PasswordChanged = "password_changed"
)

// Known reports whether name has a template set.
func Known(name string) bool {
	switch name {
	case Welcome, PasswordChanged:
		return true
	}
	return false
}

// Brand carries the sender-side fields every template shows.
type Brand struct {
	AppName     string
	CompanyName string
	SupportURL  string
}

// AccountData is the data model of the account notification templates.
type AccountData struct {
	Brand
	FirstName string
	Email     string
	Time      string
}

// NewAccountData builds template data for an account notification at t.
func NewAccountData(b Brand, firstName, email string, t time.Time) AccountData {
	return AccountData{
		Brand:     b,
		FirstName: firstName,
		Email:     email,
		Time:      t.UTC().Format("02 January 2006, 15:04 MST"),
	}
}

// ToMap converts AccountData into the EmailJob.Data shape.
func (d AccountData) ToMap() map[string]any {
	return map[string]any{
		"AppName":     d.AppName,
		"CompanyName": d.CompanyName,
		"SupportURL":  d.SupportURL,
		"FirstName":   d.FirstName,
		"Email":       d.Email,
		"Time":        d.Time,
	}
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		return value
	}
}

var funcs = map[string]any{"default": defaultFn}

// renderFile loads and renders a single template file from the embedded FS.
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)
	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmpl.FuncMap(funcs)).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(texttpl.FuncMap(funcs)).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	if !Known(name) {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
