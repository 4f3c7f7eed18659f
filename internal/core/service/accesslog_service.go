package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/creditdesk/loan-system/internal/api/metrics"
	"github.com/creditdesk/loan-system/internal/core/domain"
	"github.com/creditdesk/loan-system/internal/core/ports"
)

// AccessLogService records login/logout events. The log is append-only
// and unbounded: no retention or rotation is applied.
type AccessLogService struct {
	repo   ports.AccessLogRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAccessLogService(repo ports.AccessLogRepository, users ports.UserRepository, logger zerolog.Logger) *AccessLogService {
	return &AccessLogService{repo: repo, users: users, logger: logger}
}

// Record appends an event for userID. login=true marks a login, false a logout.
func (s *AccessLogService) Record(ctx context.Context, userID string, login bool) (*domain.AccessLog, error) {
	entry := &domain.AccessLog{
		Type:      login,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to store access log entry")
		return nil, err
	}

	metrics.AccessLogEventsTotal.WithLabelValues(eventLabel(login)).Inc()
	return created, nil
}

// ListAll returns every event with the owner embedded.
func (s *AccessLogService) ListAll(ctx context.Context) ([]*domain.AccessLog, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	cache := make(map[string]*domain.User)
	for _, entry := range entries {
		owner, ok := cache[entry.UserID]
		if !ok {
			var err error
			owner, err = s.users.FindByID(ctx, entry.UserID)
			if err != nil {
				s.logger.Warn().Err(err).Str("user_id", entry.UserID).Msg("owner lookup failed")
				owner = nil
			}
			cache[entry.UserID] = owner
		}
		entry.User = owner
	}
	return entries, nil
}

func eventLabel(login bool) string {
	if login {
		return "login"
	}
	return "logout"
}
