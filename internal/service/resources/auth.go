package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/session"
)

// CredentialSink receives the credentials issued by a successful login.
// *session.Manager implements it.
type CredentialSink interface {
	Set(creds session.Credentials) error
}

// AuthService wraps /auth.
type AuthService struct {
	t    Transport
	sink CredentialSink
}

// NewAuthService builds an AuthService that stores login results in sink.
func NewAuthService(t Transport, sink CredentialSink) *AuthService {
	return &AuthService{t: t, sink: sink}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	CSRFToken string       `json:"csrfToken"`
	User      *models.User `json:"user"`
}

// Login exchanges a username and password for a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, models.NewValidationError("credentials", "username and password are required")
	}

	resp, err := fetchOne[loginResponse](ctx, s.t, http.MethodPost, "/auth/login",
		loginRequest{Username: username, Password: password}, "Login failed")
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response carried no token")
	}

	if s.sink != nil {
		if err := s.sink.Set(session.Credentials{Token: resp.Token, CSRFToken: resp.CSRFToken, User: resp.User}); err != nil {
			return nil, fmt.Errorf("store session: %w", err)
		}
	}
	return resp.User, nil
}

// Me returns the signed-in user.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	user, err := fetchOne[models.User](ctx, s.t, http.MethodGet, "/auth/me", nil, "Failed to fetch current user", "user")
	if err != nil {
		return nil, err
	}
	return &user, nil
}
