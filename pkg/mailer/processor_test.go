package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestProcessWelcomeTemplate(t *testing.T) {
	s := &fakeSender{}
	p := &Processor{Sender: s}

	job := EmailJob{To: "alice@example.com", Template: TemplateWelcome, Data: map[string]any{"Name": "Alice", "AppName": "Acme"}}
	require.NoError(t, p.Process(context.Background(), mustJSON(t, job)))

	require.Len(t, s.sent, 1)
	got := s.sent[0]
	assert.Equal(t, "alice@example.com", got.to)
	assert.Equal(t, "Welcome to Acme", got.subject)
	assert.Contains(t, got.text, "Hi Alice")
	assert.Contains(t, got.html, "alice@example.com")
}

func TestProcessRawMessage(t *testing.T) {
	s := &fakeSender{}
	p := &Processor{Sender: s}

	require.NoError(t, p.Process(context.Background(), mustJSON(t, EmailJob{To: "a@b.c", Subject: "hi", Text: "body"})))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "hi", s.sent[0].subject)
}

func TestProcessBadJobs(t *testing.T) {
	p := &Processor{Sender: &fakeSender{}}
	ctx := context.Background()

	cases := map[string][]byte{
		"invalid json":     []byte("{"),
		"no recipient":     mustJSON(t, EmailJob{Subject: "x", Text: "y"}),
		"unknown template": mustJSON(t, EmailJob{To: "a@b.c", Template: "nope"}),
		"empty message":    mustJSON(t, EmailJob{To: "a@b.c"}),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, p.Process(ctx, body), ErrBadJob)
		})
	}
}

func TestProcessSendFailureIsRetryable(t *testing.T) {
	p := &Processor{Sender: &fakeSender{err: errors.New("mailgun 503")}}
	err := p.Process(context.Background(), mustJSON(t, EmailJob{To: "a@b.c", Subject: "x", Text: "y"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadJob)
}
