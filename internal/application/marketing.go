package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/domain/marketing"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrEmailDelivery = errors.New("Failed to send email notification. Please try again or contact admin.")

const (
	marketingFormTitle = "Marketing Request"
	unknownSubmitter   = "Unknown user"
	teamsCardColor     = notify.DefaultThemeColor
)

type MarketingService struct {
	Forms       *FormService
	Suggestions *SuggestionService
	Mailer      notify.Mailer
	Teams       TeamsPoster
	Archive     Archiver
	Email       notify.EmailSettings

	log *zap.Logger
	now func() time.Time
}

func NewMarketingService(formSvc *FormService, suggestions *SuggestionService, deps Deps) *MarketingService {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &MarketingService{
		Forms:       formSvc,
		Suggestions: suggestions,
		Mailer:      deps.Mailer,
		Teams:       deps.Teams,
		Archive:     deps.Archive,
		Email:       deps.Email,
		log:         log,
		now:         time.Now,
	}
}

// Validate applies the marketing form definition plus the contact and
// campaign rules. req is normalised in place.
func (s *MarketingService) Validate(req *marketing.Request) (form.Normalized, error) {
	def, err := s.Forms.Registry.Get(forms.MarketingRequestID)
	if err != nil {
		return nil, err
	}
	values, errs := def.Validate(req.Values())

	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	switch {
	case req.ContactEmail == "":
		errs.Add("contactEmail", "Contact email is required")
	case !form.IsEmail(req.ContactEmail):
		errs.Add("contactEmail", "Please enter a valid email address")
	}

	if req.ActivityType == "" {
		req.ActivityType = marketing.ActivityOnceOff
	}
	switch req.ActivityType {
	case marketing.ActivityOnceOff:
		req.PreferredChannels, req.Timeline, req.Budget = nil, "", ""
	case marketing.ActivityBroaderCampaign:
		req.PreferredChannels = uniqueStrings(trimAll(req.PreferredChannels))
		req.Timeline = strings.TrimSpace(req.Timeline)
		req.Budget = strings.TrimSpace(req.Budget)
	default:
		errs.Add("activityType", "Activity type must be once-off or broader-campaign")
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	// Carry the cleaned values back so the email shows what was stored.
	req.Background = stringValue(values, "background")
	req.Objectives = stringValue(values, "objectives")
	req.Measurement = listValue(values, "measurement")
	req.CCEmails = listValue(values, "ccEmails")
	req.Targeting = stringValue(values, "targeting")
	req.Examples = stringValue(values, "examples")
	req.ExampleLinks = listValue(values, "exampleLinks")
	req.ActionSteps = stringValue(values, "actionSteps")

	values["contactEmail"] = req.ContactEmail
	values["activityType"] = string(req.ActivityType)
	if req.ActivityType == marketing.ActivityBroaderCampaign {
		values["preferredChannels"] = orEmpty(req.PreferredChannels)
		values["timeline"] = req.Timeline
		values["budget"] = req.Budget
	}
	return values, nil
}

// Submit stores a marketing request and sends its notifications. The email
// must go out; Teams and the archive are best effort.
func (s *MarketingService) Submit(ctx context.Context, actor Actor, req marketing.Request) (form.Submission, error) {
	if strings.TrimSpace(req.ContactEmail) == "" {
		req.ContactEmail = actor.Email
	}
	values, err := s.Validate(&req)
	if err != nil {
		return form.Submission{}, err
	}

	def, err := s.Forms.Registry.Get(forms.MarketingRequestID)
	if err != nil {
		return form.Submission{}, err
	}
	def.Title = marketingFormTitle

	sub, err := s.Forms.store(actor, def, values)
	if err != nil {
		return form.Submission{}, err
	}

	data := s.emailData(actor, req, sub.SubmittedAt)
	summary := s.Suggestions.SummariseForm(ctx, data)
	msg, err := notify.BuildMarketingMessage(s.Email, data, summary)
	if err != nil {
		s.Forms.setStatus(&sub, form.StatusNotificationFailed, err.Error())
		return sub, err
	}

	if _, err := s.send(ctx, msg); err != nil {
		s.log.Error("marketing email failed", zap.String("reference", sub.Reference), zap.Error(err))
		s.Forms.setStatus(&sub, form.StatusNotificationFailed, err.Error())
		return sub, ErrEmailDelivery
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.Teams != nil && s.Teams.Configured() {
		g.Go(func() error {
			card := notify.MessageCard("New Marketing Request", marketingCardMessage(sub, data), teamsFacts(data), teamsCardColor)
			if err := s.Teams.Post(gctx, card); err != nil {
				s.log.Warn("teams notification failed", zap.String("reference", sub.Reference), zap.Error(err))
			}
			return nil
		})
	}
	if s.Archive != nil {
		g.Go(func() error {
			if err := s.Archive.Store(gctx, sub.Reference, sub, msg.HTML); err != nil {
				s.log.Warn("archive failed", zap.String("reference", sub.Reference), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	s.Forms.setStatus(&sub, form.StatusNotified, "")
	s.Forms.publish(sub)
	return sub, nil
}

// SendEmail summarises, renders and sends a marketing email without storing
// anything. It returns the provider message id.
func (s *MarketingService) SendEmail(ctx context.Context, data marketing.EmailData) (string, error) {
	if err := checkRecipients(&data.Request); err != nil {
		return "", err
	}
	if data.ActivityType == "" {
		data.ActivityType = marketing.ActivityOnceOff
	}
	summary := s.Suggestions.SummariseForm(ctx, data)
	if summary != nil {
		s.log.Info("form summary generated", zap.Int("confidence", summary.Confidence))
	}
	msg, err := notify.BuildMarketingMessage(s.Email, data, summary)
	if err != nil {
		return "", err
	}
	return s.send(ctx, msg)
}

// checkRecipients trims and validates the addresses copied on the email.
func checkRecipients(req *marketing.Request) error {
	errs := make(form.FieldErrors)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	switch {
	case req.ContactEmail == "":
		errs.Add("contactEmail", "Contact email is required")
	case !form.IsEmail(req.ContactEmail):
		errs.Add("contactEmail", "Please enter a valid email address")
	}
	req.CCEmails = trimAll(req.CCEmails)
	for _, addr := range req.CCEmails {
		if !form.IsEmail(addr) {
			errs.Add("ccEmails", fmt.Sprintf("%q is not a valid email address", addr))
		}
	}
	return errs.Err()
}

func (s *MarketingService) send(ctx context.Context, msg notify.Message) (string, error) {
	if s.Mailer == nil {
		return "", notify.ErrMailerNotConfigured
	}
	return s.Mailer.Send(ctx, msg)
}

func (s *MarketingService) emailData(actor Actor, req marketing.Request, at time.Time) marketing.EmailData {
	by := actor.Email
	if by == "" {
		by = unknownSubmitter
	}
	return marketing.EmailData{
		Request:            req,
		SubmittedBy:        by,
		SubmittedAt:        at.UTC().Format(time.RFC3339),
		IsLinkedInCampaign: isLinkedInCampaign(req),
	}
}

func isLinkedInCampaign(req marketing.Request) bool {
	if req.ActivityType != marketing.ActivityBroaderCampaign {
		return false
	}
	for _, ch := range req.PreferredChannels {
		if strings.Contains(strings.ToLower(ch), "linkedin") {
			return true
		}
	}
	return false
}

func marketingCardMessage(sub form.Submission, data marketing.EmailData) string {
	return "Reference " + sub.Reference + " from " + data.SubmittedBy
}

func teamsFacts(data marketing.EmailData) map[string]any {
	facts := map[string]any{
		"Activity":    data.ActivityType.Label(),
		"Contact":     data.ContactEmail,
		"Measurement": data.Measurement,
		"Objectives":  data.Objectives,
	}
	if len(data.PreferredChannels) > 0 {
		facts["Channels"] = data.PreferredChannels
	}
	if data.Timeline != "" {
		facts["Timeline"] = data.Timeline
	}
	return facts
}

func stringValue(values form.Normalized, key string) string {
	s, _ := values[key].(string)
	return s
}

func listValue(values form.Normalized, key string) []string {
	l, _ := values[key].([]string)
	return l
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
