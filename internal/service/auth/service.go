// Package authsvc регистрирует пользователей и выдает им bearer-токены.
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const credentialsRequired = "Username and password are required"

// Service реализует регистрацию и логин.
type Service struct {
	users  domain.UserRepository
	issuer *auth.Issuer
	logger *log.Entry

	hashCost int
	now      func() time.Time
}

// NewService конструирует сервис. logger может быть nil.
func NewService(users domain.UserRepository, issuer *auth.Issuer, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "auth-service")
	}
	return &Service{
		users:    users,
		issuer:   issuer,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register создает пользователя с bcrypt-хешем пароля.
func (s *Service) Register(ctx context.Context, username, password string) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, domain.InvalidRequest(credentialsRequired)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		// bcrypt отказывается хешировать пароли длиннее 72 байт.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.User{}, domain.InvalidRequest("password is too long")
		}
		return domain.User{}, fmt.Errorf("%w: hash password: %v", domain.ErrInternal, err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("%w: create user: %v", domain.ErrInternal, err)
	}

	s.logger.WithField("username", username).Info("user registered")
	return user, nil
}

// Login проверяет пароль и выпускает токен. Неизвестный пользователь и неверный
// пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	if username == "" || password == "" {
		return "", domain.User{}, domain.InvalidRequest(credentialsRequired)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, domain.ErrBadCredentials
		}
		return "", domain.User{}, fmt.Errorf("%w: load user: %v", domain.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", domain.User{}, domain.ErrBadCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	s.logger.WithField("username", username).Info("user logged in")
	return token, user, nil
}
