package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/audit"
	"github.com/linskybing/genie-forms/internal/domain/user"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/pkg/response"
	"github.com/linskybing/genie-forms/pkg/utils"
)

var userLabels = map[string]string{
	"Username": "username",
	"Password": "password",
	"Email":    "email",
	"FullName": "full name",
}

// SecureCookies marks the session cookie Secure.
var SecureCookies = false

type UserHandler struct {
	svc   *application.UserService
	audit repository.AuditRepo
}

func NewUserHandler(svc *application.UserService, auditRepo repository.AuditRepo) *UserHandler {
	return &UserHandler{svc: svc, audit: auditRepo}
}

// Register godoc
// @Summary User registration
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "User registration info"
// @Success 201 {object} user.UserDTO "User registered successfully"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Username already taken"
// @Failure 500 {object} response.ErrorResponse "Failed to create user"
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.CreateUserInput
	if !bindJSON(c, &input, userLabels) {
		return
	}

	usr, err := h.svc.RegisterUser(input)
	if err != nil {
		if errors.Is(err, application.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	dto := user.ToDTO(usr)
	utils.LogAuditWithConsole(c, audit.ActionRegister, audit.ResourceUser, usr.Username, nil, dto, "user registered", h.audit)
	c.JSON(http.StatusCreated, dto)
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} user.LoginResponse "JWT token and user info"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.ErrorResponse "Invalid username or password"
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginInput
	if !bindJSON(c, &req, userLabels) {
		return
	}

	usr, token, err := h.svc.LoginUser(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid username or password"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"token",
		token,
		int(application.TokenTTL.Seconds()),
		"/",
		"",
		SecureCookies,
		true,
	)

	utils.LogAuditWithConsole(c, audit.ActionLogin, audit.ResourceUser, usr.Username, nil, nil, "user logged in", h.audit)

	c.JSON(http.StatusOK, user.LoginResponse{
		Token:    token,
		User:     user.ToDTO(usr),
		ExpireAt: time.Now().Add(application.TokenTTL).Unix(),
	})
}

// Logout godoc
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse "Logout successful"
// @Router /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(
		"token",
		"",
		-1,
		"/",
		"",
		SecureCookies,
		true,
	)

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logout successful"})
}

// AuthStatus godoc
// @Summary Token status
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{} "Token is valid"
// @Failure 401 {object} response.ErrorResponse "Token expired"
// @Router /auth/status [get]
func (h *UserHandler) AuthStatus(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "valid",
		"user_id":  claims.UserID,
		"username": claims.Username,
		"is_admin": claims.IsAdmin,
	})
}
