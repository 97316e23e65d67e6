package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/audit"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrForbidden          = errors.New("forbidden")
	ErrMarketingRoute     = errors.New("marketing requests must be sent to /marketing-requests")
)

type SubmissionPage struct {
	Items    []form.Submission `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

type FormService struct {
	Repos    *repository.Repos
	Registry *forms.Registry
	Teams    TeamsPoster
	Feed     Publisher

	log *zap.Logger
	now func() time.Time
}

func NewFormService(repos *repository.Repos, registry *forms.Registry, teams TeamsPoster, feed Publisher, log *zap.Logger) *FormService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FormService{
		Repos:    repos,
		Registry: registry,
		Teams:    teams,
		Feed:     feed,
		log:      log,
		now:      time.Now,
	}
}

func (s *FormService) ListForms() []form.FormSummary {
	defs := s.Registry.List()
	out := make([]form.FormSummary, 0, len(defs))
	for i := range defs {
		out = append(out, defs[i].Summary())
	}
	return out
}

func (s *FormService) GetForm(id string) (form.Definition, error) {
	return s.Registry.Get(id)
}

// ValidateForm runs the form's validation without storing anything.
func (s *FormService) ValidateForm(id string, values map[string]any) (form.ValidateResult, error) {
	def, err := s.Registry.Get(id)
	if err != nil {
		return form.ValidateResult{}, err
	}
	normalized, errs := def.Validate(values)
	return form.ValidateResult{
		Valid:  len(errs) == 0,
		Values: normalized,
		Fields: errs,
	}, nil
}

// Submit validates and stores a dynamic form submission, then notifies Teams
// and the live feed. Notification failures are recorded on the row only.
func (s *FormService) Submit(ctx context.Context, actor Actor, id string, values map[string]any) (form.Submission, error) {
	if id == forms.MarketingRequestID {
		return form.Submission{}, ErrMarketingRoute
	}
	def, err := s.Registry.Get(id)
	if err != nil {
		return form.Submission{}, err
	}
	normalized, errs := def.Validate(values)
	if err := errs.Err(); err != nil {
		return form.Submission{}, err
	}

	sub, err := s.store(actor, def, normalized)
	if err != nil {
		return form.Submission{}, err
	}

	if s.Teams != nil && s.Teams.Configured() {
		if err := s.Teams.Post(ctx, notify.AdaptiveCard(def.ID, normalized, def.FieldNames())); err != nil {
			s.log.Warn("teams notification failed",
				zap.String("reference", sub.Reference), zap.Error(err))
			s.setStatus(&sub, form.StatusNotificationFailed, err.Error())
		} else {
			s.setStatus(&sub, form.StatusNotified, "")
		}
	}

	s.publish(sub)
	return sub, nil
}

// ProcessForm is Submit for the function route. The body may only repeat
// the caller's own user id; anything else is ignored.
func (s *FormService) ProcessForm(ctx context.Context, actor Actor, input form.ProcessFormDTO) (form.Submission, error) {
	if input.UserID != nil && (actor.UserID == nil || *actor.UserID != *input.UserID) {
		s.log.Warn("ignoring userId that does not match the session",
			zap.Uint("userId", *input.UserID), zap.Bool("authenticated", actor.UserID != nil))
	}
	return s.Submit(ctx, actor, input.FormID, input.FormData)
}

// store persists the submission together with its audit row.
func (s *FormService) store(actor Actor, def form.Definition, values form.Normalized) (form.Submission, error) {
	ref, err := utils.NewReference()
	if err != nil {
		return form.Submission{}, fmt.Errorf("reference: %w", err)
	}
	now := s.now().UTC()
	data, err := form.NewEnvelope(form.Envelope{
		FormID:      def.ID,
		FormTitle:   def.Title,
		Responses:   values,
		SubmittedAt: now,
	})
	if err != nil {
		return form.Submission{}, err
	}

	sub := form.Submission{
		Reference:   ref,
		FormID:      def.ID,
		FormTitle:   def.Title,
		CreatedBy:   actor.UserID,
		Data:        data,
		Status:      form.StatusSubmitted,
		SubmittedAt: now,
	}
	err = s.Repos.ExecTx(func(r *repository.Repos) error {
		if err := r.Submission.CreateSubmission(&sub); err != nil {
			return err
		}
		return utils.LogAudit(actor.UserID, actor.IP, actor.UserAgent,
			audit.ActionSubmit, audit.ResourceSubmission, ref,
			nil, values, "submitted form "+def.ID, r.Audit)
	})
	if err != nil {
		return form.Submission{}, fmt.Errorf("store submission: %w", err)
	}
	s.log.Info("submission stored",
		zap.String("form", def.ID), zap.String("reference", ref), zap.Uint("id", sub.ID))
	return sub, nil
}

func (s *FormService) setStatus(sub *form.Submission, status form.SubmissionStatus, notifyErr string) {
	if err := s.Repos.Submission.UpdateStatus(sub.ID, status, notifyErr); err != nil {
		s.log.Warn("submission status update failed",
			zap.String("reference", sub.Reference), zap.String("status", string(status)), zap.Error(err))
		return
	}
	sub.Status = status
	sub.NotificationError = notifyErr
}

func (s *FormService) publish(sub form.Submission) {
	if s.Feed != nil {
		s.Feed.PublishSubmission(sub)
	}
}

func (s *FormService) ListMine(userID uint) ([]form.Submission, error) {
	return s.Repos.Submission.ListSubmissionsByUser(userID)
}

func (s *FormService) ListAll(filter form.SubmissionFilter) (SubmissionPage, error) {
	filter.Normalize()
	items, total, err := s.Repos.Submission.ListSubmissions(filter)
	if err != nil {
		return SubmissionPage{}, err
	}
	return SubmissionPage{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetSubmission returns the submission when actor owns it or is an admin.
func (s *FormService) GetSubmission(actor Actor, id uint) (form.Submission, error) {
	sub, err := s.Repos.Submission.GetSubmissionByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return form.Submission{}, ErrSubmissionNotFound
	}
	if err != nil {
		return form.Submission{}, err
	}
	if actor.IsAdmin {
		return sub, nil
	}
	if actor.UserID == nil || sub.CreatedBy == nil || *sub.CreatedBy != *actor.UserID {
		return form.Submission{}, ErrForbidden
	}
	return sub, nil
}

// NotifyTeams posts a MessageCard to the configured webhook.
func (s *FormService) NotifyTeams(ctx context.Context, title, message string, data map[string]any, color string) error {
	if s.Teams == nil || !s.Teams.Configured() {
		return notify.ErrTeamsNotConfigured
	}
	return s.Teams.Post(ctx, notify.MessageCard(title, message, data, color))
}
