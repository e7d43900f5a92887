package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/auth-profile-service/pkg/mailer/templates"
)

// Sender delivers one email; *Mailgun satisfies it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrBadJob marks a job that can never be delivered and should be dropped.
var ErrBadJob = errors.New("bad email job")

// Prepare renders job into subject, text and html. Template jobs are rendered
// from the embedded templates; literal jobs are passed through.
func Prepare(job EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", fmt.Errorf("%w: no template and no content", ErrBadJob)
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	if !templates.Known(job.Template) {
		return "", "", "", fmt.Errorf("%w: unknown template %q", ErrBadJob, job.Template)
	}
	subject, text, html, err = templates.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	return subject, text, html, nil
}

// Handle decodes and delivers one queued message. A returned error wrapping
// ErrBadJob means the message should be dropped; any other error is retryable.
func Handle(ctx context.Context, body []byte, s Sender) (EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return job, fmt.Errorf("%w: decode: %v", ErrBadJob, err)
	}
	subject, text, html, err := Prepare(job)
	if err != nil {
		return job, err
	}
	if err := s.Send(ctx, job.To, subject, text, html); err != nil {
		return job, fmt.Errorf("send to %s: %w", job.To, err)
	}
	return job, nil
}
