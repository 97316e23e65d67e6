package handlers

import (
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/feed"
	"github.com/linskybing/genie-forms/internal/repository"
)

type Handlers struct {
	Audit      *AuditHandler
	User       *UserHandler
	Form       *FormHandler
	Marketing  *MarketingHandler
	Function   *FunctionHandler
	Suggestion *SuggestionHandler
	Feed       *FeedHandler
}

func New(svc *application.Services, repos *repository.Repos, hub *feed.Hub) *Handlers {
	return &Handlers{
		Audit:      NewAuditHandler(svc.Audit),
		User:       NewUserHandler(svc.User, repos.Audit),
		Form:       NewFormHandler(svc.Form),
		Marketing:  NewMarketingHandler(svc.Marketing),
		Function:   NewFunctionHandler(svc.Form, svc.Marketing),
		Suggestion: NewSuggestionHandler(svc.Suggestion),
		Feed:       NewFeedHandler(hub),
	}
}
