package application

import (
	"context"

	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/pkg/llm"
	"go.uber.org/zap"
)

// TeamsPoster delivers a chat card to the configured webhook.
type TeamsPoster interface {
	Configured() bool
	Post(ctx context.Context, payload any) error
}

// Archiver keeps a copy of a submission and its notification email.
type Archiver interface {
	Store(ctx context.Context, reference string, snapshot any, emailHTML string) error
}

// Publisher announces new submissions to live subscribers.
type Publisher interface {
	PublishSubmission(submission any)
}

// Actor is the caller of a service operation.
type Actor struct {
	UserID    *uint
	Username  string
	Email     string
	IsAdmin   bool
	IP        string
	UserAgent string
}

// Deps are the collaborators shared by the services. Nil members disable
// the matching feature.
type Deps struct {
	Registry   *forms.Registry
	Mailer     notify.Mailer
	Teams      TeamsPoster
	LLM        llm.Client
	Archive    Archiver
	Feed       Publisher
	Email      notify.EmailSettings
	AdminNames []string
	Log        *zap.Logger
}

type Services struct {
	Audit      *AuditService
	User       *UserService
	Form       *FormService
	Marketing  *MarketingService
	Suggestion *SuggestionService
}

func New(repos *repository.Repos, deps Deps) *Services {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	suggestions := NewSuggestionService(deps.LLM, deps.Log)
	formSvc := NewFormService(repos, deps.Registry, deps.Teams, deps.Feed, deps.Log)
	return &Services{
		Audit:      NewAuditService(repos),
		User:       NewUserService(repos, deps.AdminNames),
		Form:       formSvc,
		Marketing:  NewMarketingService(formSvc, suggestions, deps),
		Suggestion: suggestions,
	}
}
