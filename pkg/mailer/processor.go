package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/user-auth-service/pkg/mailer/templates"
)

// ErrBadJob marks a message that can never succeed and must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Processor decodes, renders and sends queued email jobs.
type Processor struct {
	Sender Sender
}

// Process handles one queue message body. Errors wrapping ErrBadJob are
// permanent; anything else is a delivery failure worth retrying.
func (p *Processor) Process(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if _, ok := job.Data["Email"]; !ok {
		job.Data["Email"] = job.To
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadJob, err)
		}
		subject, text, html = strings.TrimSpace(s), t, h
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}
	return p.Sender.Send(ctx, job.To, subject, text, html)
}
