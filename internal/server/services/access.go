package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/common"
	"github.com/AHx92/my-workout-tracker/internal/server/auth"
	"github.com/AHx92/my-workout-tracker/internal/server/config"
)

// Access is the answer of checkUserAccess.
type Access struct {
	Approved bool
	Email    string
}

// AccessService resolves bearer tokens to emails and checks them against the
// allow-list. An empty allow-list approves everyone, anonymous callers included.
type AccessService struct {
	secret   []byte
	validity time.Duration
	allowed  map[string]struct{}
}

func NewAccessService(cfg *config.Config) *AccessService {
	allowed := make(map[string]struct{}, len(cfg.AllowedEmails))
	for _, e := range cfg.AllowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &AccessService{
		secret:   []byte(cfg.SecretKey),
		validity: cfg.TokenValidityDuration,
		allowed:  allowed,
	}
}

// Authenticate returns the email carried by token. An empty token is an
// anonymous caller. Invalid or expired tokens wrap common.ErrorUnauthorized.
func (s *AccessService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	email, err := auth.GetEmailFromToken(token, s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return email, nil
}

func (s *AccessService) Check(ctx context.Context, email string) *Access {
	return &Access{Approved: s.approved(email), Email: email}
}

func (s *AccessService) approved(email string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	if email == "" {
		return false
	}
	_, ok := s.allowed[strings.ToLower(email)]
	return ok
}

// IssueToken signs a token for email, for development use.
func (s *AccessService) IssueToken(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	return auth.GenerateToken(email, s.secret, s.validity)
}
