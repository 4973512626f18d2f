// Package services contains the client's domain operations: typed calls
// against the NoteSphere API layered on the request dispatcher, plus the
// local policy around them (validation, credential persistence, upload
// retry, feed reconciliation).
package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/notesphere/cli/internal/client/api"
	"github.com/notesphere/cli/internal/client/credstore"
	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/common"
	"github.com/notesphere/cli/internal/logging"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthService manages the session credential.
//
// Contract:
//   - Register: create an account; deliberately does not log in. Callers
//     wanting a session chain a Login afterward.
//   - Login: authenticate and persist the returned token and user snapshot.
//   - Logout: erase the stored credential.
//   - CurrentUser / IsAuthenticated: read the stored session.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte, role, college string) (string, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout() error
	CurrentUser() *models.User
	IsAuthenticated() bool
}

type authService struct {
	client   api.Client
	store    *credstore.Store
	tokenTTL time.Duration
	log      logging.Logger
}

// NewAuthService binds an AuthService to the given API client and
// credential store. tokenTTL is the fallback session lifetime when the
// server's token carries no expiry of its own.
func NewAuthService(client api.Client, store *credstore.Store, tokenTTL time.Duration, log logging.Logger) AuthService {
	return &authService{client: client, store: store, tokenTTL: tokenTTL, log: log}
}

// Register creates the account and returns the server's confirmation
// message. Local preconditions fail before any network call.
func (a *authService) Register(ctx context.Context, username, email string, password []byte, role, college string) (string, error) {
	switch {
	case username == "":
		return "", fmt.Errorf("%w: username is required", common.ErrValidation)
	case !emailRe.MatchString(email):
		return "", fmt.Errorf("%w: invalid email format", common.ErrValidation)
	case len(password) < 6:
		return "", fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	case college == "":
		return "", fmt.Errorf("%w: college is required", common.ErrValidation)
	}
	if role == "" {
		role = "student"
	}

	msg, err := a.client.Register(ctx, models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: string(password),
		Role:     role,
		College:  college,
	})
	if err != nil {
		return "", err
	}
	a.log.Info(ctx, "registered", "email", email)
	return msg, nil
}

// Login authenticates and saves the credential. On failure the server's
// message reaches the caller verbatim and no session is established.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	resp, err := a.client.Login(ctx, models.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, err
	}

	if err := a.store.Save(resp.Token, resp.User, a.tokenTTL); err != nil {
		return nil, fmt.Errorf("save credential: %w", err)
	}
	a.log.Info(ctx, "logged in", "email", email)
	return resp.User, nil
}

func (a *authService) Logout() error {
	return a.store.Clear()
}

func (a *authService) CurrentUser() *models.User {
	return a.store.CurrentUser()
}

func (a *authService) IsAuthenticated() bool {
	return a.store.IsAuthenticated()
}
