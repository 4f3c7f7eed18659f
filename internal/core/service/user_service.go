package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/creditdesk/loan-system/internal/api/metrics"
	"github.com/creditdesk/loan-system/internal/core/domain"
	"github.com/creditdesk/loan-system/internal/core/ports"
)

// UserService implements account management and credential checks.
type UserService struct {
	repo      ports.UserRepository
	banList   ports.BanList
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, banList ports.BanList, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * 24 * time.Hour
	}
	return &UserService{repo: repo, banList: banList, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates a member account after three sequential uniqueness
// checks (phone, then passport, then email; first conflict wins) and returns the
// stored user with a fresh bearer token.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.create(ctx, input, false)
}

// CreateAdmin is Register with the administrator flag forced on.
func (s *UserService) CreateAdmin(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.create(ctx, input, true)
}

func (s *UserService) create(ctx context.Context, input ports.RegisterInput, admin bool) (*ports.AuthResult, error) {
	if err := s.checkUnique(ctx, input.Number, input.Passport, input.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Surname:      input.Surname,
		Number:       input.Number,
		Passport:     input.Passport,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(created.RoleName()).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", created.RoleName()).Msg("account created")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// checkUnique runs the three uniqueness lookups in a fixed order so a
// request conflicting on several fields always reports the same one.
func (s *UserService) checkUnique(ctx context.Context, number, passport, email string) error {
	if taken, err := s.repo.ExistsByNumber(ctx, number); err != nil {
		return err
	} else if taken {
		return domain.ErrPhoneTaken
	}
	if taken, err := s.repo.ExistsByPassport(ctx, passport); err != nil {
		return err
	} else if taken {
		return domain.ErrPassportTaken
	}
	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return err
	} else if taken {
		return domain.ErrEmailTaken
	}
	return nil
}

// Login authenticates by email and password. Check order is fixed:
// unknown email, then bad password, then banned account.
func (s *UserService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if user.IsBanned {
		metrics.LoginsTotal.WithLabelValues("banned").Inc()
		return nil, domain.ErrUserBanned
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return &ports.AuthResult{User: user, Token: token}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile overwrites name, surname, number, passport and email,
// conflict-checking each natural key that actually changed.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Number != user.Number {
		if taken, err := s.repo.ExistsByNumber(ctx, input.Number); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrPhoneTaken
		}
	}
	if input.Passport != user.Passport {
		if taken, err := s.repo.ExistsByPassport(ctx, input.Passport); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrPassportTaken
		}
	}
	if input.Email != user.Email {
		if taken, err := s.repo.ExistsByEmail(ctx, input.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrEmailTaken
		}
	}

	user.Name = input.Name
	user.Surname = input.Surname
	user.Number = input.Number
	user.Passport = input.Passport
	user.Email = input.Email
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// UpdatePassword verifies the old password before storing a new hash.
func (s *UserService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func (s *UserService) ListAccounts(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// ToggleBan flips the banned flag of the user matching passport and keeps
// the ban-list cache in sync so outstanding tokens stop working at once.
// Cache failures are logged but do not fail the toggle: the login-time
// check still applies.
func (s *UserService) ToggleBan(ctx context.Context, passport string) (*domain.User, error) {
	user, err := s.repo.FindByPassport(ctx, passport)
	if err != nil {
		return nil, err
	}

	user.IsBanned = !user.IsBanned
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	action := "unban"
	if updated.IsBanned {
		action = "ban"
	}
	if s.banList != nil {
		var cacheErr error
		if updated.IsBanned {
			cacheErr = s.banList.Ban(ctx, updated.ID)
		} else {
			cacheErr = s.banList.Unban(ctx, updated.ID)
		}
		if cacheErr != nil {
			s.logger.Warn().Err(cacheErr).Str("user_id", updated.ID).Msg("ban list sync failed")
		}
	}

	metrics.BansTotal.WithLabelValues(action).Inc()
	s.logger.Info().Str("user_id", updated.ID).Str("action", action).Msg("ban toggled")

	return updated, nil
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.RoleName(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
