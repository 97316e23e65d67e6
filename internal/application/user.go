package application

import (
	"errors"
	"strings"
	"time"

	"github.com/linskybing/genie-forms/internal/api/middleware"
	"github.com/linskybing/genie-forms/internal/domain/user"
	"github.com/linskybing/genie-forms/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TokenTTL = 24 * time.Hour

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordHashFailure = errors.New("failed to hash password")
	ErrUsernameTaken       = errors.New("username already taken")
)

type UserService struct {
	Repos      *repository.Repos
	adminNames map[string]struct{}
}

// NewUserService grants the admin role to the listed usernames when they
// register.
func NewUserService(repos *repository.Repos, adminNames []string) *UserService {
	admins := make(map[string]struct{}, len(adminNames))
	for _, n := range adminNames {
		admins[strings.ToLower(n)] = struct{}{}
	}
	return &UserService{
		Repos:      repos,
		adminNames: admins,
	}
}

func (s *UserService) RegisterUser(input user.CreateUserInput) (user.User, error) {
	_, err := s.Repos.User.GetUserByUsername(input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, err
	}
	if err == nil {
		return user.User{}, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrPasswordHashFailure
	}

	usr := user.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    strings.TrimSpace(input.Email),
		FullName: input.FullName,
		Role:     user.RoleUser,
	}
	if _, ok := s.adminNames[strings.ToLower(input.Username)]; ok {
		usr.Role = user.RoleAdmin
	}

	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

// LoginUser checks the password and issues a session token.
func (s *UserService) LoginUser(username, password string) (user.User, string, error) {
	usr, err := s.Repos.User.GetUserByUsername(username)
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(usr, TokenTTL)
	if err != nil {
		return user.User{}, "", err
	}
	return usr, token, nil
}

func (s *UserService) FindUserByID(id uint) (user.User, error) {
	usr, err := s.Repos.User.GetUserByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrUserNotFound
	}
	return usr, err
}
