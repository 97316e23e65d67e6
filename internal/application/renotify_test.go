package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/domain/user"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
	"github.com/linskybing/genie-forms/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedSubmission(t *testing.T, formID string, responses map[string]any) form.Submission {
	t.Helper()
	data, err := form.NewEnvelope(form.Envelope{FormID: formID, Responses: responses})
	require.NoError(t, err)
	return form.Submission{
		ID:          21,
		Reference:   "ref0000021",
		FormID:      formID,
		Data:        data,
		Status:      form.StatusNotificationFailed,
		SubmittedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ------ FormService.Renotify ------
func TestFormRenotify_Success(t *testing.T) {
	svc, m := setupFormServiceMocks(t)
	sub := failedSubmission(t, "contact", map[string]any{"name": "Ada"})
	m.sub.EXPECT().UpdateStatus(uint(21), form.StatusNotified, "").Return(nil)

	require.NoError(t, svc.Renotify(context.Background(), sub))

	require.Len(t, m.teams.payloads, 1)
	_, ok := m.teams.payloads[0].(notify.AdaptiveCardPayload)
	assert.True(t, ok)
}

func TestFormRenotify_StillFailing(t *testing.T) {
	svc, m := setupFormServiceMocks(t)
	m.teams.err = errors.New("webhook 500")
	sub := failedSubmission(t, "contact", map[string]any{"name": "Ada"})
	m.sub.EXPECT().UpdateStatus(uint(21), form.StatusNotificationFailed, "webhook 500").Return(nil)

	err := svc.Renotify(context.Background(), sub)
	assert.EqualError(t, err, "webhook 500")
}

func TestFormRenotify_TeamsNotConfigured(t *testing.T) {
	svc, m := setupFormServiceMocks(t)
	m.teams.disabled = true

	err := svc.Renotify(context.Background(), failedSubmission(t, "contact", nil))
	assert.ErrorIs(t, err, notify.ErrTeamsNotConfigured)
}

// ------ MarketingService.Renotify ------
func TestMarketingRenotify_ResendsEmail(t *testing.T) {
	svc, m := setupMarketingServiceMocks(t)
	users := mock.NewMockUserRepo(gomock.NewController(t))
	svc.Forms.Repos.User = users

	req := validRequest()
	req.ContactEmail = "requester@example.com"
	req.ActivityType = "once-off"
	sub := failedSubmission(t, forms.MarketingRequestID, req.Values())
	env, _ := sub.Envelope()
	env.Responses["contactEmail"] = req.ContactEmail
	env.Responses["activityType"] = string(req.ActivityType)
	sub.Data, _ = form.NewEnvelope(env)
	sub.CreatedBy = ptrUint(3)

	users.EXPECT().GetUserByID(uint(3)).Return(user.User{Email: "owner@example.com"}, nil)
	m.sub.EXPECT().UpdateStatus(uint(21), form.StatusNotified, "").Return(nil)

	require.NoError(t, svc.Renotify(context.Background(), sub))

	require.Len(t, m.mailer.sent, 1)
	msg := m.mailer.sent[0]
	assert.Contains(t, msg.HTML, "owner@example.com")
	assert.Contains(t, msg.Cc, "requester@example.com")
	assert.Empty(t, m.teams.payloads)
}

func TestMarketingRenotify_MailerDown(t *testing.T) {
	svc, m := setupMarketingServiceMocks(t)
	m.mailer.err = errors.New("resend: 503")
	sub := failedSubmission(t, forms.MarketingRequestID, validRequest().Values())
	m.sub.EXPECT().UpdateStatus(uint(21), form.StatusNotificationFailed, "resend: 503").Return(nil)

	err := svc.Renotify(context.Background(), sub)
	assert.EqualError(t, err, "resend: 503")
}

func TestServicesRenotify_Dispatch(t *testing.T) {
	svc, m := setupMarketingServiceMocks(t)
	services := &Services{Form: svc.Forms, Marketing: svc}
	sub := failedSubmission(t, forms.MarketingRequestID, validRequest().Values())
	m.sub.EXPECT().UpdateStatus(uint(21), form.StatusNotified, "").Return(nil)

	require.NoError(t, services.Renotify(context.Background(), sub))
	assert.Len(t, m.mailer.sent, 1)
	assert.Empty(t, m.teams.payloads)
}
