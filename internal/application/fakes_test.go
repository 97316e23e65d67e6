package application

import (
	"context"
	"sync"

	"github.com/linskybing/genie-forms/internal/notify"
)

type fakeTeams struct {
	mu       sync.Mutex
	disabled bool
	err      error
	payloads []any
}

func (f *fakeTeams) Configured() bool { return !f.disabled }

func (f *fakeTeams) Post(ctx context.Context, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.err
}

type fakeMailer struct {
	err  error
	sent []notify.Message
}

func (f *fakeMailer) Send(ctx context.Context, msg notify.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "email-1", nil
}

type llmCall struct {
	system    string
	user      string
	maxTokens int
}

type fakeLLM struct {
	reply string
	err   error
	calls []llmCall
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	f.calls = append(f.calls, llmCall{system: system, user: user, maxTokens: maxTokens})
	return f.reply, f.err
}

type fakeArchive struct {
	mu     sync.Mutex
	err    error
	stored map[string]string
}

func (f *fakeArchive) Store(ctx context.Context, reference string, snapshot any, emailHTML string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		f.stored = map[string]string{}
	}
	f.stored[reference] = emailHTML
	return f.err
}

type fakePublisher struct {
	events []any
}

func (f *fakePublisher) PublishSubmission(submission any) {
	f.events = append(f.events, submission)
}
