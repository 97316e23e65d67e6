package routes

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/linskybing/genie-forms/internal/api/handlers"
	"github.com/linskybing/genie-forms/internal/api/middleware"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/config"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/domain/user"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/internal/repository/mock"
	"github.com/linskybing/genie-forms/pkg/response"
	"github.com/linskybing/genie-forms/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingTeams struct {
	mu       sync.Mutex
	payloads []any
}

func (r *recordingTeams) Configured() bool { return true }

func (r *recordingTeams) Post(ctx context.Context, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return nil
}

type routerMocks struct {
	user  *mock.MockUserRepo
	audit *mock.MockAuditRepo
	sub   *mock.MockSubmissionRepo
}

type testEnv struct {
	router     *gin.Engine
	mocks      routerMocks
	userToken  string
	adminToken string
}

// ------ Setup ------
func setupRouter(t *testing.T, deps application.Deps) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JwtSecret = "test-secret"
	config.Issuer = "genie-forms-test"
	middleware.Init()

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := routerMocks{
		user:  mock.NewMockUserRepo(ctrl),
		audit: mock.NewMockAuditRepo(ctrl),
		sub:   mock.NewMockSubmissionRepo(ctrl),
	}
	repos := &repository.Repos{User: m.user, Audit: m.audit, Submission: m.sub}

	oldAudit := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repos repository.AuditRepo) {
	}
	oldRef := utils.NewReference
	utils.NewReference = func() (string, error) { return "ref0000042", nil }
	t.Cleanup(func() {
		utils.LogAuditWithConsole = oldAudit
		utils.NewReference = oldRef
	})

	if deps.Registry == nil {
		deps.Registry = forms.NewRegistry([]string{"contact", forms.MarketingRequestID}, nil)
	}
	svc := application.New(repos, deps)

	r := gin.New()
	RegisterRoutes(r, handlers.New(svc, repos, nil))

	userToken, err := middleware.GenerateToken(user.User{UID: 7, Username: "alice", Email: "alice@example.com", Role: user.RoleUser}, time.Hour)
	require.NoError(t, err)
	adminToken, err := middleware.GenerateToken(user.User{UID: 1, Username: "admin", Email: "admin@example.com", Role: user.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	return testEnv{router: r, mocks: m, userToken: userToken, adminToken: adminToken}
}

func validContact() map[string]any {
	return map[string]any{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"message": "Please call me back tomorrow.",
	}
}

func expectStore(m routerMocks, id uint) {
	m.sub.EXPECT().CreateSubmission(gomock.Any()).DoAndReturn(func(s *form.Submission) error {
		s.ID = id
		return nil
	})
	m.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)
}

// ------ Health / forms ------
func TestHealthz(t *testing.T) {
	env := setupRouter(t, application.Deps{})

	resp, err := newTestClient(env.router, "").GET("/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestForms_ListAndGet(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	client := newTestClient(env.router, "")

	resp, err := client.GET("/forms")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []form.FormSummary
	require.NoError(t, resp.DecodeJSON(&list))
	require.Len(t, list, 2)

	resp, err = client.GET("/forms/contact")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var def form.Definition
	require.NoError(t, resp.DecodeJSON(&def))
	assert.Equal(t, "contact", def.ID)

	resp, err = client.GET("/forms/survey")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestForms_Validate(t *testing.T) {
	env := setupRouter(t, application.Deps{})

	resp, err := newTestClient(env.router, "").POST("/forms/contact/validate", map[string]any{
		"values": map[string]any{"name": "A", "email": "nope", "message": "short"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result form.ValidateResult
	require.NoError(t, resp.DecodeJSON(&result))
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Name must be at least 2 characters"}, result.Fields["name"])
	assert.Equal(t, []string{"Invalid email address"}, result.Fields["email"])
	assert.Equal(t, []string{"Message must be at least 10 characters"}, result.Fields["message"])
}

// ------ Submissions ------
func TestSubmitForm_ValidationFailure(t *testing.T) {
	env := setupRouter(t, application.Deps{})

	resp, err := newTestClient(env.router, "").POST("/forms/contact/submissions", map[string]any{
		"values": map[string]any{"name": "Ada Lovelace", "email": "bad", "message": "Please call me back tomorrow."},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body response.ValidationErrorResponse
	require.NoError(t, resp.DecodeJSON(&body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, []string{"Invalid email address"}, body.Fields["email"])
}

func TestSubmitForm_AttributesToken(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	env.mocks.sub.EXPECT().CreateSubmission(gomock.Any()).DoAndReturn(func(s *form.Submission) error {
		require.NotNil(t, s.CreatedBy)
		assert.Equal(t, uint(7), *s.CreatedBy)
		s.ID = 11
		return nil
	})
	env.mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	resp, err := newTestClient(env.router, env.userToken).POST("/forms/contact/submissions", map[string]any{"values": validContact()})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sub form.Submission
	require.NoError(t, resp.DecodeJSON(&sub))
	assert.Equal(t, uint(11), sub.ID)
	assert.Equal(t, "ref0000042", sub.Reference)
	assert.Equal(t, form.StatusSubmitted, sub.Status)
}

func TestSubmitForm_NotifiesTeams(t *testing.T) {
	teams := &recordingTeams{}
	env := setupRouter(t, application.Deps{Teams: teams})
	expectStore(env.mocks, 3)
	env.mocks.sub.EXPECT().UpdateStatus(uint(3), form.StatusNotified, "").Return(nil)

	resp, err := newTestClient(env.router, "").POST("/forms/contact/submissions", map[string]any{"values": validContact()})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, teams.payloads, 1)
}

func TestListSubmissions_AdminOnly(t *testing.T) {
	env := setupRouter(t, application.Deps{})

	resp, err := newTestClient(env.router, "").GET("/submissions")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = newTestClient(env.router, env.userToken).GET("/submissions")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.mocks.sub.EXPECT().ListSubmissions(form.SubmissionFilter{FormID: "contact", Page: 2, PageSize: 10}).
		Return([]form.Submission{{ID: 1}}, int64(11), nil)

	resp, err = newTestClient(env.router, env.adminToken).GET("/submissions?form_id=contact&page=2&page_size=10")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page application.SubmissionPage
	require.NoError(t, resp.DecodeJSON(&page))
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 1)
}

func TestListMySubmissions(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	env.mocks.sub.EXPECT().ListSubmissionsByUser(uint(7)).Return([]form.Submission{{ID: 4}, {ID: 5}}, nil)

	resp, err := newTestClient(env.router, env.userToken).GET("/submissions/my")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var subs []form.Submission
	require.NoError(t, resp.DecodeJSON(&subs))
	assert.Len(t, subs, 2)
}

func TestGetSubmission_Ownership(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	owner := uint(99)
	env.mocks.sub.EXPECT().GetSubmissionByID(uint(5)).Return(form.Submission{ID: 5, CreatedBy: &owner}, nil).Times(2)
	env.mocks.sub.EXPECT().GetSubmissionByID(uint(6)).Return(form.Submission{}, gorm.ErrRecordNotFound)

	resp, err := newTestClient(env.router, env.userToken).GET("/submissions/5")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = newTestClient(env.router, env.adminToken).GET("/submissions/5")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = newTestClient(env.router, env.adminToken).GET("/submissions/6")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = newTestClient(env.router, env.adminToken).GET("/submissions/abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ------ Functions ------
func TestProcessForm(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	env.mocks.sub.EXPECT().CreateSubmission(gomock.Any()).DoAndReturn(func(s *form.Submission) error {
		assert.Nil(t, s.CreatedBy)
		s.ID = 21
		return nil
	})
	env.mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	resp, err := newTestClient(env.router, "").POST("/functions/process-form", map[string]any{
		"formId":   "contact",
		"formData": validContact(),
		"userId":   55,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body response.FunctionResponse
	require.NoError(t, resp.DecodeJSON(&body))
	assert.True(t, body.Success)
	assert.Equal(t, uint(21), body.SubmissionID)
	assert.Equal(t, "Form submitted successfully", body.Message)
}

func TestProcessForm_MarketingRequestRejected(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	client := newTestClient(env.router, "")

	resp, err := client.POST("/functions/process-form", map[string]any{
		"formId":   forms.MarketingRequestID,
		"formData": map[string]any{"background": "Launch"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.ErrorMessage(), "/marketing-requests")

	resp, err = client.POST("/forms/"+forms.MarketingRequestID+"/submissions", map[string]any{
		"values": map[string]any{"background": "Launch"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessForm_MissingFields(t *testing.T) {
	env := setupRouter(t, application.Deps{})

	resp, err := newTestClient(env.router, "").POST("/functions/process-form", map[string]any{"formData": validContact()})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "formId and formData are required", resp.ErrorMessage())
}

func TestTeamsWebhook(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		env := setupRouter(t, application.Deps{})

		resp, err := newTestClient(env.router, "").POST("/functions/teams-webhook", map[string]any{"title": "Hi", "message": "there"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotEmpty(t, resp.ErrorMessage())
	})

	t.Run("sent", func(t *testing.T) {
		teams := &recordingTeams{}
		env := setupRouter(t, application.Deps{Teams: teams})

		resp, err := newTestClient(env.router, "").POST("/functions/teams-webhook", map[string]any{
			"title":   "New request",
			"message": "Someone submitted a form",
			"data":    map[string]any{"budget": "5k"},
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body response.FunctionResponse
		require.NoError(t, resp.DecodeJSON(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "Teams notification sent successfully", body.Message)
		assert.Len(t, teams.payloads, 1)
	})
}

func TestSendMarketingEmail(t *testing.T) {
	payload := func(cc ...string) map[string]any {
		return map[string]any{
			"background":   "Launch",
			"objectives":   "Leads",
			"contactEmail": "alice@example.com",
			"ccEmails":     cc,
			"submittedBy":  "alice@example.com",
			"submittedAt":  "2025-03-01T10:00:00Z",
		}
	}

	t.Run("requires token", func(t *testing.T) {
		env := setupRouter(t, application.Deps{})

		resp, err := newTestClient(env.router, "").POST("/functions/send-marketing-email", payload())
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid recipients", func(t *testing.T) {
		env := setupRouter(t, application.Deps{})

		resp, err := newTestClient(env.router, env.userToken).POST("/functions/send-marketing-email", payload("not-an-address"))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body response.FunctionResponse
		require.NoError(t, resp.DecodeJSON(&body))
		assert.False(t, body.Success)
		assert.Contains(t, body.Error, "ccEmails")
	})

	t.Run("no mailer", func(t *testing.T) {
		env := setupRouter(t, application.Deps{})

		resp, err := newTestClient(env.router, env.userToken).POST("/functions/send-marketing-email", payload("boss@example.com"))
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body response.FunctionResponse
		require.NoError(t, resp.DecodeJSON(&body))
		assert.False(t, body.Success)
		assert.NotEmpty(t, body.Error)
	})
}

func TestMarketingRequest_RequiresToken(t *testing.T) {
	env := setupRouter(t, application.Deps{})

	resp, err := newTestClient(env.router, "").POST("/marketing-requests", map[string]any{"background": "x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ------ AI ------
func TestAI_Routes(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	client := newTestClient(env.router, "")

	resp, err := client.POST("/ai/measurements", map[string]any{
		"fieldName":  "measurement",
		"background": "We are launching a SaaS product",
		"objectives": "Increase leads and brand awareness",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.POST("/ai/objective-measurements-suggestion", map[string]any{"objectives": "Grow"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = client.POST("/ai/marketing-action-plan", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "formContent is required", resp.ErrorMessage())

	resp, err = client.POST("/ai/assistance", map[string]any{"message": "help"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ------ Auth ------
func TestRegister(t *testing.T) {
	env := setupRouter(t, application.Deps{AdminNames: []string{"admin"}})
	client := newTestClient(env.router, "")

	env.mocks.user.EXPECT().GetUserByUsername("newbie").Return(user.User{}, gorm.ErrRecordNotFound)
	env.mocks.user.EXPECT().SaveUser(gomock.Any()).DoAndReturn(func(u *user.User) error {
		u.UID = 12
		return nil
	})

	resp, err := client.POST("/register", map[string]any{
		"username": "newbie",
		"password": "secret123",
		"email":    "newbie@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var dto user.UserDTO
	require.NoError(t, resp.DecodeJSON(&dto))
	assert.Equal(t, uint(12), dto.UID)
	assert.False(t, dto.IsAdmin)

	env.mocks.user.EXPECT().GetUserByUsername("newbie").Return(user.User{UID: 12}, nil)
	resp, err = client.POST("/register", map[string]any{
		"username": "newbie",
		"password": "secret123",
		"email":    "newbie@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = client.POST("/register", map[string]any{
		"username": "ab",
		"password": "secret123",
		"email":    "newbie@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "username must be at least 3 characters", resp.ErrorMessage())
}

func TestLogin_CookieSession(t *testing.T) {
	env := setupRouter(t, application.Deps{})
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	env.mocks.user.EXPECT().GetUserByUsername("alice").
		Return(user.User{UID: 7, Username: "alice", Password: string(hashed), Role: user.RoleUser}, nil).Times(2)

	client := newTestClient(env.router, "")
	resp, err := client.POST("/login", map[string]any{"username": "alice", "password": "wrong-pass"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = client.POST("/login", map[string]any{"username": "alice", "password": "secret123"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login user.LoginResponse
	require.NoError(t, resp.DecodeJSON(&login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.User.Username)

	var session *http.Cookie
	for _, ck := range resp.Cookies {
		if ck.Name == "token" {
			session = ck
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	client.cookie = session
	resp, err = client.GET("/auth/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthStatus_InvalidToken(t *testing.T) {
	env := setupRouter(t, application.Deps{})

	resp, err := newTestClient(env.router, "not-a-token").GET("/auth/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
