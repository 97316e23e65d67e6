package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/domain/marketing"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
)

// Renotify sends the notifications of a stored submission again and records
// the outcome on the row.
func (s *Services) Renotify(ctx context.Context, sub form.Submission) error {
	if sub.FormID == forms.MarketingRequestID {
		return s.Marketing.Renotify(ctx, sub)
	}
	return s.Form.Renotify(ctx, sub)
}

// Renotify posts the Teams card of a dynamic form submission again.
func (s *FormService) Renotify(ctx context.Context, sub form.Submission) error {
	if s.Teams == nil || !s.Teams.Configured() {
		return notify.ErrTeamsNotConfigured
	}
	env, err := sub.Envelope()
	if err != nil {
		return fmt.Errorf("decode submission %s: %w", sub.Reference, err)
	}
	var order []string
	if s.Registry != nil {
		if def, ok := s.Registry.Lookup(sub.FormID); ok {
			order = def.FieldNames()
		}
	}
	if err := s.Teams.Post(ctx, notify.AdaptiveCard(sub.FormID, env.Responses, order)); err != nil {
		s.setStatus(&sub, form.StatusNotificationFailed, err.Error())
		return err
	}
	s.setStatus(&sub, form.StatusNotified, "")
	return nil
}

// Renotify rebuilds the marketing email from the stored responses and sends
// it again.
func (s *MarketingService) Renotify(ctx context.Context, sub form.Submission) error {
	env, err := sub.Envelope()
	if err != nil {
		return fmt.Errorf("decode submission %s: %w", sub.Reference, err)
	}
	raw, err := json.Marshal(env.Responses)
	if err != nil {
		return err
	}
	var req marketing.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decode marketing request %s: %w", sub.Reference, err)
	}

	by := unknownSubmitter
	if sub.CreatedBy != nil {
		if u, err := s.Forms.Repos.User.GetUserByID(*sub.CreatedBy); err == nil && u.Email != "" {
			by = u.Email
		}
	}
	data := marketing.EmailData{
		Request:            req,
		SubmittedBy:        by,
		SubmittedAt:        sub.SubmittedAt.UTC().Format(time.RFC3339),
		IsLinkedInCampaign: isLinkedInCampaign(req),
	}

	msg, err := notify.BuildMarketingMessage(s.Email, data, s.Suggestions.SummariseForm(ctx, data))
	if err != nil {
		return err
	}
	if _, err := s.send(ctx, msg); err != nil {
		s.Forms.setStatus(&sub, form.StatusNotificationFailed, err.Error())
		return err
	}
	s.Forms.setStatus(&sub, form.StatusNotified, "")
	return nil
}
