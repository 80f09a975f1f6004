package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
	"github.com/bulanstore/bulan-api/app/utils/token"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrInvalidAuthToken   = errors.New("invalid or expired token")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type AuthService struct {
	userRepo  repositories.UserRepository
	tokens    *token.JWTUtil
	blocklist TokenBlocklist
	mailer    EmailSender
	appURL    string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *token.JWTUtil,
	blocklist TokenBlocklist,
	mailer EmailSender,
	appURL string,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		blocklist: blocklist,
		mailer:    mailer,
		appURL:    appURL,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     input.Email,
		Password:  hash,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      models.RoleCustomer,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendVerificationEmail(user)

	return user, nil
}

func (s *AuthService) sendVerificationEmail(user *models.User) {
	if s.mailer == nil {
		return
	}
	emailToken, err := s.tokens.GenerateEmailToken(user.ID, user.Email)
	if err != nil {
		zap.L().Error("failed to generate verification token", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", s.appURL, emailToken)

	go func() {
		if err := s.mailer.SendHTMLEmail(user.Email, "Verify your email", BuildVerificationEmailBody(verifyURL)); err != nil {
			zap.L().Warn("verification email not sent", zap.String("user_id", user.ID), zap.Error(err))
		}
	}()
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *AuthService) issueTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair and revokes the
// old refresh token so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, ErrInvalidAuthToken
	}

	revoked, err := s.blocklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blocklist: %w", err)
	}
	if revoked {
		return nil, ErrInvalidAuthToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := s.blocklist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		zap.L().Warn("failed to revoke rotated refresh token", zap.Error(err))
	}

	return s.issueTokenPair(user)
}

// Logout revokes both tokens of the session. The refresh token is optional;
// an expired or malformed one is ignored since it is unusable anyway.
func (s *AuthService) Logout(ctx context.Context, accessClaims *token.Claims, refreshToken string) error {
	if err := s.blocklist.Revoke(ctx, accessClaims.ID, time.Until(accessClaims.ExpiresAt.Time)); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if refreshToken != "" {
		if claims, err := s.tokens.ValidateToken(refreshToken, token.TypeRefresh); err == nil {
			if err := s.blocklist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
				zap.L().Warn("failed to revoke refresh token", zap.Error(err))
			}
		}
	}
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.ValidateToken(tokenString, token.TypeEmail)
	if err != nil {
		return ErrInvalidAuthToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrInvalidAuthToken
	}
	if user.IsVerified {
		return nil
	}

	user.IsVerified = true
	return s.userRepo.Update(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if !helpers.PasswordCompare(user.Password, []byte(current)) {
		return ErrInvalidCredentials
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.userRepo.Update(ctx, user)
}
