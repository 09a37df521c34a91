package services

import (
	"context"
	"errors"
	"log"
	"time"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/config"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/core/session"
	"syndiceasy/internal/pkg/jwt"
	"syndiceasy/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

const resetTokenTTL = 30 * time.Minute

// AuthService handles authentication business logic. It is also the
// token refresh collaborator of the session store: a successful refresh
// merges the resolved user and access token into the store, guarded by
// the generation captured before the exchange started.
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	resetRepo        repositories.PasswordResetRepository
	sessions         *session.Store
	notifications    *NotificationService
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	resetRepo repositories.PasswordResetRepository,
	sessions *session.Store,
	notifications *NotificationService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		resetRepo:        resetRepo,
		sessions:         sessions,
		notifications:    notifications,
		cfg:              cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Generate tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 5. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// 6. Merge into session store
	s.mergeSession(user, tokens.AccessToken)

	log.Printf("✅ User logged in: %s [%s]", user.Username, user.Role)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Refresh exchanges a refresh token for a fresh pair (token rotation).
// On failure the session store is left untouched; the caller treats the
// outcome as "not authenticated". Never retried automatically.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// Capture the session generation before the exchange; a logout while
	// the exchange is in flight invalidates the merge below.
	_, gen := s.sessions.Get()

	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Find the stored token by hash
	tokenHash := password.HashToken(refreshToken)
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 3. Reject revoked or expired tokens
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 4. Get user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 5. Rotate: revoke old token, issue and store a new pair
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// 6. Merge into session store; a stale merge after logout is dropped
	next := session.Authenticated(userRecord(user), tokens.AccessToken)
	if err := s.sessions.Set(gen, next); err != nil {
		log.Printf("⚠️ Stale refresh discarded for user %s: %v", user.Username, err)
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token and clears the session. Logout is
// optimistic and local-first: a revocation failure is logged and
// swallowed, the local session is cleared regardless.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken != "" {
		tokenHash := password.HashToken(refreshToken)
		if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
			log.Printf("⚠️ Logout revocation failed (ignored): %v", err)
		}
	}

	s.teardownChannel()
	s.sessions.Clear()
	log.Printf("✅ User logged out")
}

// teardownChannel closes the live notification channel of the session's
// user, abandoning any pending read-expiry removals.
func (s *AuthService) teardownChannel() {
	if s.notifications == nil {
		return
	}
	if sess := s.sessions.Current(); sess.IsLoggedIn() {
		s.notifications.Close(sess.User.ID)
	}
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	if s.notifications != nil {
		s.notifications.Close(userID)
	}
	s.sessions.Clear()
	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ForgotPassword creates a reset token for the account behind email.
// The outcome is success/failure only; an unknown email succeeds silently
// so the endpoint does not leak which addresses exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.New().String()
	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: password.HashToken(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	// Delivery is out of band; the mail relay picks it up from here.
	log.Printf("✉️ Password reset token issued for user %s", user.Username)
	return nil
}

// ResetPassword consumes a reset token and replaces the password
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.resetRepo.GetByTokenHash(ctx, password.HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	user, err := s.userRepo.GetByID(ctx, reset.UserID)
	if err != nil {
		return ErrUserNotFound
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
		return err
	}

	// All existing sessions are invalid once the password changes.
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID)
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Sessions exposes the session store
func (s *AuthService) Sessions() *session.Store {
	return s.sessions
}

// mergeSession writes a fresh login into the session store against the
// current generation.
func (s *AuthService) mergeSession(user *models.User, accessToken string) {
	_, gen := s.sessions.Get()
	next := session.Authenticated(userRecord(user), accessToken)
	if err := s.sessions.Set(gen, next); err != nil {
		log.Printf("⚠️ Session merge discarded for user %s: %v", user.Username, err)
	}
}

func userRecord(user *models.User) session.UserRecord {
	return session.UserRecord{
		ID:       user.ID,
		Username: user.Username,
		Role:     domain.Role(user.Role),
		Gender:   user.Gender,
	}
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()
	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
