package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/creditdesk/loan-system/internal/api/metrics"
	"github.com/creditdesk/loan-system/internal/core/domain"
	"github.com/creditdesk/loan-system/internal/core/ports"
)

// ApplicationService implements the loan-application lifecycle.
type ApplicationService struct {
	repo   ports.ApplicationRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewApplicationService(repo ports.ApplicationRepository, users ports.UserRepository, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, users: users, logger: logger}
}

// Submit stores a new application owned by the caller. The status is
// always pending at creation; any status-like input is ignored upstream
// by the schema. Field values are stored as supplied, and an existing
// pending application does not block a new one.
func (s *ApplicationService) Submit(ctx context.Context, input ports.SubmitApplicationInput) (*domain.Application, error) {
	app := &domain.Application{
		UserID:    input.UserID,
		Credit:    input.Credit,
		Period:    input.Period,
		Salary:    input.Salary,
		Expenses:  input.Expenses,
		Purpose:   input.Purpose,
		Percent:   input.Percent,
		Payment:   input.Payment,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to store application")
		return nil, err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	s.logger.Info().Str("application_id", created.ID).Str("user_id", created.UserID).Msg("application submitted")

	return created, nil
}

// ListByOwner returns the caller's applications with the owner embedded.
func (s *ApplicationService) ListByOwner(ctx context.Context, userID string) ([]*domain.Application, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveOwners(ctx, apps), nil
}

// DeleteActive removes the caller's most recently created pending
// application. The repository returns domain.ErrApplicationNotFound when
// none exists.
func (s *ApplicationService) DeleteActive(ctx context.Context, userID string) error {
	if err := s.repo.DeleteNewestPending(ctx, userID); err != nil {
		return err
	}
	metrics.ApplicationsDeletedTotal.Inc()
	s.logger.Info().Str("user_id", userID).Msg("active application deleted")
	return nil
}

// ListAll returns every application with owners embedded.
func (s *ApplicationService) ListAll(ctx context.Context) ([]*domain.Application, error) {
	apps, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveOwners(ctx, apps), nil
}

// UpdateStatusByPassport resolves the applicant by passport and moves all
// their pending applications to status in one multi-document update.
// Zero matching documents is a successful no-op.
func (s *ApplicationService) UpdateStatusByPassport(ctx context.Context, passport string, status domain.ApplicationStatus) (int64, error) {
	if !status.Valid() {
		return 0, domain.ErrInvalidStatus
	}

	user, err := s.users.FindByPassport(ctx, passport)
	if err != nil {
		return 0, err
	}

	updated, err := s.repo.UpdateStatusByUser(ctx, user.ID, domain.StatusPending, status)
	if err != nil {
		return 0, err
	}

	metrics.ApplicationStatusUpdatesTotal.WithLabelValues(statusLabel(status)).Add(float64(updated))
	s.logger.Info().
		Str("user_id", user.ID).
		Int("status", int(status)).
		Int64("updated", updated).
		Msg("application status updated")

	return updated, nil
}

// resolveOwners attaches the owning user to each application, fetching
// each distinct owner once. A missing owner record leaves the reference
// nil rather than failing the whole listing.
func (s *ApplicationService) resolveOwners(ctx context.Context, apps []*domain.Application) []*domain.Application {
	cache := make(map[string]*domain.User)
	for _, app := range apps {
		owner, ok := cache[app.UserID]
		if !ok {
			var err error
			owner, err = s.users.FindByID(ctx, app.UserID)
			if err != nil {
				s.logger.Warn().Err(err).Str("user_id", app.UserID).Msg("owner lookup failed")
				owner = nil
			}
			cache[app.UserID] = owner
		}
		app.User = owner
	}
	return apps
}

func statusLabel(s domain.ApplicationStatus) string {
	switch s {
	case domain.StatusApproved:
		return "approved"
	case domain.StatusPending:
		return "pending"
	case domain.StatusRejected:
		return "rejected"
	}
	return "unknown"
}
