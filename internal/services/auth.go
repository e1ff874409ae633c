package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sbilibin2017/todo-api/internal/apperrors"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/models"
	"github.com/sbilibin2017/todo-api/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

const (
	// PasswordCost is the bcrypt cost used for every stored password.
	PasswordCost = 10
	// maxPasswordBytes is the input limit of bcrypt.
	maxPasswordBytes = 72
	resetTokenBytes  = 32
)

// Error variables
var (
	ErrMissingFields      = apperrors.New(apperrors.KindValidation, "All fields are required")
	ErrMissingCredentials = apperrors.New(apperrors.KindValidation, "Email and password are required")
	ErrMissingEmail       = apperrors.New(apperrors.KindValidation, "Email is required")
	ErrMissingPassword    = apperrors.New(apperrors.KindValidation, "Password is required")
	ErrPasswordTooLong    = apperrors.New(apperrors.KindValidation, "Password must be at most 72 bytes")
	ErrUserAlreadyExists  = apperrors.New(apperrors.KindConflict, "User already exists")
	ErrInvalidCredentials = apperrors.New(apperrors.KindAuth, "Invalid credentials")
	ErrUserNotFound       = apperrors.New(apperrors.KindNotFound, "User not found")
	ErrEmailNotSent       = apperrors.New(apperrors.KindDelivery, "Email could not be sent")
	ErrInvalidResetToken  = apperrors.New(apperrors.KindValidation, "Invalid or expired token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID, tokenHash string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// TokenGenerator issues identity tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, email string) (string, error)
}

// Mailer delivers the password reset link.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// EventPublisher publishes domain events without reporting failures.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event)
}

// AuthConfig holds the settings of the password reset flow.
type AuthConfig struct {
	ResetTokenTTL time.Duration
	FrontendURL   string
}

// AuthService handles signup, login and password reset.
type AuthService struct {
	reader    UserReader
	writer    UserWriter
	tokens    TokenGenerator
	mailer    Mailer
	publisher EventPublisher
	cfg       AuthConfig
	now       func() time.Time
}

// NewAuthService creates a new AuthService instance. publisher may be nil.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokens TokenGenerator,
	mailer Mailer,
	publisher EventPublisher,
	cfg AuthConfig,
) *AuthService {
	return &AuthService{
		reader:    reader,
		writer:    writer,
		tokens:    tokens,
		mailer:    mailer,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// dummyHash is compared against when the email is unknown so that both
// login failures cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), PasswordCost)

// Signup registers a new user and logs them in.
func (svc *AuthService) Signup(ctx context.Context, name, email, password string) (*models.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "check user exists")
	}
	if existing != nil {
		logger.Log.Infow("signup rejected, email already registered", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := svc.writer.Save(ctx, name, email, hash)
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		return nil, errors.Wrap(err, "save user")
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}

	svc.publish(ctx, models.NewEvent(models.EventUserSignedUp, user.ID, user.ID))

	return &models.AuthResult{Token: token, User: user.Public()}, nil
}

// Login authenticates a user. Unknown email and wrong password are
// indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		logger.Log.Infow("login failed, unknown email", "email", email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("login failed, wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}

	return &models.AuthResult{Token: token, User: user.Public()}, nil
}

// ForgotPassword stores the hash of a fresh reset token and emails the raw
// token. A failed delivery clears the stored token again.
func (svc *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrMissingEmail
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		return errors.Wrap(err, "get user")
	}
	if user == nil {
		return ErrUserNotFound
	}

	rawToken, tokenHash, err := newResetToken()
	if err != nil {
		return errors.Wrap(err, "generate reset token")
	}

	expire := svc.now().Add(svc.cfg.ResetTokenTTL)
	if err := svc.writer.SetResetToken(ctx, user.ID, tokenHash, expire); err != nil {
		return errors.Wrap(err, "store reset token")
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", svc.cfg.FrontendURL, rawToken)
	if err := svc.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// the request may be gone already, the rollback must still happen
		if clearErr := svc.writer.ClearResetToken(context.WithoutCancel(ctx), user.ID, tokenHash); clearErr != nil {
			logger.Log.Errorw("failed to clear reset token after delivery failure", "user_id", user.ID, "error", clearErr)
		}
		return ErrEmailNotSent.WithCause(err)
	}

	logger.Log.Infow("password reset requested", "user_id", user.ID, "expires_at", expire)
	return nil
}

// ResetPassword consumes a reset token, replaces the password and returns a
// fresh identity token.
func (svc *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error) {
	if newPassword == "" {
		return "", ErrMissingPassword
	}
	if len(newPassword) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if strings.TrimSpace(rawToken) == "" {
		return "", ErrInvalidResetToken
	}

	user, err := svc.reader.GetByResetToken(ctx, hashResetToken(rawToken), svc.now())
	if err != nil {
		return "", errors.Wrap(err, "find reset token")
	}
	if user == nil {
		return "", ErrInvalidResetToken
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return "", err
	}

	if err := svc.writer.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", errors.Wrap(err, "update password")
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Email)
	if err != nil {
		return "", errors.Wrap(err, "generate token")
	}

	svc.publish(ctx, models.NewEvent(models.EventUserPasswordReset, user.ID, user.ID))

	return token, nil
}

func (svc *AuthService) publish(ctx context.Context, event models.Event) {
	if svc.publisher != nil {
		svc.publisher.Publish(ctx, event)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

// newResetToken returns a random hex token and its stored form.
func newResetToken() (raw, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
