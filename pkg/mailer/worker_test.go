package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/auth-profile-service/pkg/mailer/templates"
)

type fakeSender struct {
	to, subject, text, html string
	err                     error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.to, f.subject, f.text, f.html = to, subject, text, html
	return f.err
}

func encode(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestHandleTemplateJob(t *testing.T) {
	data := templates.NewAccountData(templates.Brand{AppName: "Acme"}, "Jo", "jo@example.com", time.Now()).ToMap()
	s := &fakeSender{}
	job, err := Handle(context.Background(), encode(t, EmailJob{To: "jo@example.com", Template: templates.Welcome, Data: data}), s)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if job.Template != templates.Welcome || s.to != "jo@example.com" {
		t.Fatalf("job = %+v, sent to %q", job, s.to)
	}
	if !strings.Contains(s.subject, "Acme") || s.html == "" || s.text == "" {
		t.Fatalf("rendered subject=%q text=%q html=%q", s.subject, s.text, s.html)
	}
}

func TestHandleLiteralJob(t *testing.T) {
	s := &fakeSender{}
	if _, err := Handle(context.Background(), encode(t, EmailJob{To: "a@b.com", Subject: "Hi", Text: "hello"}), s); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if s.subject != "Hi" || s.text != "hello" {
		t.Fatalf("sent %+v", s)
	}
}

func TestHandleBadJobsAreDropped(t *testing.T) {
	bodies := [][]byte{
		[]byte("{not json"),
		encode(t, EmailJob{Template: templates.Welcome}),
		encode(t, EmailJob{To: "a@b.com", Template: "verify_email"}),
		encode(t, EmailJob{To: "a@b.com"}),
	}
	for _, b := range bodies {
		if _, err := Handle(context.Background(), b, &fakeSender{}); !errors.Is(err, ErrBadJob) {
			t.Fatalf("%s: err = %v, want ErrBadJob", b, err)
		}
	}
}

func TestHandleSendFailureIsRetryable(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun 503")}
	_, err := Handle(context.Background(), encode(t, EmailJob{To: "a@b.com", Subject: "Hi", Text: "x"}), s)
	if err == nil || errors.Is(err, ErrBadJob) {
		t.Fatalf("err = %v, want retryable error", err)
	}
}
