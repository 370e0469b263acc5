package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/client"
	"github.com/AHx92/my-workout-tracker/internal/client/netstatus"
	"github.com/AHx92/my-workout-tracker/internal/client/repositories/metadata"
	"github.com/AHx92/my-workout-tracker/internal/logging"
)

// AccessStatus is the backend's verdict on the current identity. Cached is
// set when it was read from the local store instead of the backend.
type AccessStatus struct {
	Approved  bool
	Email     string
	CheckedAt time.Time
	Cached    bool
}

// TokenHolder receives the bearer token used for backend calls.
type TokenHolder interface {
	SetToken(token string)
}

type AccessService struct {
	store   Store
	client  client.Client
	monitor *netstatus.Monitor
	tokens  TokenHolder
	logger  logging.Logger
	now     func() time.Time
}

func NewAccessService(store Store, c client.Client, monitor *netstatus.Monitor, tokens TokenHolder, logger logging.Logger) *AccessService {
	return &AccessService{
		store:   store,
		client:  c,
		monitor: monitor,
		tokens:  tokens,
		logger:  logger.With("module", "access"),
		now:     time.Now,
	}
}

// Check asks the backend when online and caches the answer. Offline, or when
// the backend call fails, the cached answer is returned instead;
// client.ErrLocalDataNotAvailable means there is none.
func (s *AccessService) Check(ctx context.Context) (*AccessStatus, error) {
	if s.monitor.IsOnline() {
		info, err := s.client.CheckAccess(ctx)
		if err == nil {
			st := &AccessStatus{Approved: info.Approved, Email: info.Email, CheckedAt: s.now()}
			if err := s.cache(ctx, st); err != nil {
				s.logger.Warn(ctx, "failed to cache access status", "error", err)
			}
			return st, nil
		}
		s.logger.Warn(ctx, "access check failed, using cache", "error", err)
	}

	return s.cached(ctx)
}

func (s *AccessService) cache(ctx context.Context, st *AccessStatus) error {
	md := s.store.Metadata()
	return errors.Join(
		md.Set(ctx, metadata.KeyAccessEmail, []byte(st.Email)),
		metadata.SetBool(ctx, md, metadata.KeyAccessApproved, st.Approved),
		metadata.SetTime(ctx, md, metadata.KeyAccessCheckedAt, st.CheckedAt),
	)
}

func (s *AccessService) cached(ctx context.Context) (*AccessStatus, error) {
	md := s.store.Metadata()

	approved, ok, err := metadata.GetBool(ctx, md, metadata.KeyAccessApproved)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", client.ErrLocalDataNotAvailable, err)
	}
	if !ok {
		return nil, client.ErrLocalDataNotAvailable
	}

	email, err := md.Get(ctx, metadata.KeyAccessEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", client.ErrLocalDataNotAvailable, err)
	}
	checkedAt, err := metadata.GetTime(ctx, md, metadata.KeyAccessCheckedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", client.ErrLocalDataNotAvailable, err)
	}

	return &AccessStatus{Approved: approved, Email: string(email), CheckedAt: checkedAt, Cached: true}, nil
}

// SaveToken stores the bearer token and starts using it. The cached access
// status belonged to the previous identity and is dropped.
func (s *AccessService) SaveToken(ctx context.Context, token string) error {
	md := s.store.Metadata()

	var err error
	if token == "" {
		err = md.Delete(ctx, metadata.KeyAccessToken)
	} else {
		err = md.Set(ctx, metadata.KeyAccessToken, []byte(token))
	}
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	err = errors.Join(
		md.Delete(ctx, metadata.KeyAccessApproved),
		md.Delete(ctx, metadata.KeyAccessEmail),
		md.Delete(ctx, metadata.KeyAccessCheckedAt),
	)
	if err != nil {
		s.logger.Warn(ctx, "failed to clear cached access status", "error", err)
	}

	if s.tokens != nil {
		s.tokens.SetToken(token)
	}
	return nil
}

// RestoreToken loads a previously saved token, if any, into the token holder.
// It reports whether one was found.
func (s *AccessService) RestoreToken(ctx context.Context) (bool, error) {
	raw, err := s.store.Metadata().Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if s.tokens != nil {
		s.tokens.SetToken(string(raw))
	}
	return true, nil
}
