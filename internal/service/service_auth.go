package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/internal/utils"
	"github.com/MKhiriev/go-project-tracker/models"
	"golang.org/x/crypto/bcrypt"
)

// authService registers users, checks their credentials and issues the
// bearer tokens the HTTP layer turns into actors.
type authService struct {
	userRepository store.UserRepository

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	hashCost int

	logger *logger.Logger
}

func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		hashCost:       bcrypt.DefaultCost,
		logger:         logger,
	}
}

// credentials trims the login and requires both login and password.
func credentials(user models.User) (models.User, error) {
	user.Login = strings.TrimSpace(user.Login)
	if user.Login == "" || user.Password == "" {
		return models.User{}, fmt.Errorf("%w: login and password are required", ErrInvalidInput)
	}
	return user, nil
}

// RegisterUser stores a new account with a bcrypt hash of its password.
// A taken login yields a 409 ApplicationError.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := credentials(user)
	if err != nil {
		log.Debug().Err(err).Msg("registration rejected")
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), a.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password of %q: %w", user.Login, err)
	}
	user.PasswordHash, user.Password = string(hash), ""

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user was not created")
		return models.User{}, mapStoreError(err, fmt.Sprintf("login %q", user.Login))
	}

	log.Info().Int64("id", created.UserID).Str("login", created.Login).Msg("user registered")
	return created, nil
}

// Login checks user's credentials. Unknown logins and wrong passwords both
// yield ErrWrongPassword.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := credentials(user)
	if err != nil {
		log.Debug().Err(err).Msg("login rejected")
		return models.User{}, err
	}

	stored, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, ErrWrongPassword
	case err != nil:
		return models.User{}, fmt.Errorf("looking up %q: %w", user.Login, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(user.Password)) != nil {
		log.Debug().Int64("id", stored.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	stored.PasswordHash = ""
	return stored, nil
}

func (a *authService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Actor(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// ParseToken hides the reason a token was rejected behind
// ErrTokenIsExpiredOrInvalid; the reason is only logged.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	return token, nil
}

// EnsureUser registers login unless it already exists.
func (a *authService) EnsureUser(ctx context.Context, login, password string) error {
	_, err := a.RegisterUser(ctx, models.User{Login: login, Name: login, Password: password})

	var appErr *ApplicationError
	if errors.As(err, &appErr) && appErr.Status == http.StatusConflict {
		return nil
	}
	return err
}
