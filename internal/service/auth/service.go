package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/partflow/partflow-backend-go/internal/domain/auth"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
	"github.com/partflow/partflow-backend-go/internal/pkg/jwt"
	"github.com/partflow/partflow-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. New tradies start independent:
// no company, not approved. Company membership only arrives through an
// accepted invitation.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	role, ok := user.ParseRole(req.Role)
	if !ok {
		return auth.RegisterResponse{}, user.ErrInvalidRole
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.RegisterResponse{}, user.ErrUserEmailExists
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken := uuid.NewString()
	newUser := user.User{
		Email:                  req.Email,
		Phone:                  req.Phone,
		FullName:               req.FullName,
		PasswordHash:           &passwordHash,
		Role:                   role,
		IsApproved:             false,
		EmailVerified:          false,
		EmailVerificationToken: &verificationToken,
	}
	if err := newUser.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	created, err := a.UserRepository.Create(ctx, newUser)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return auth.RegisterResponse{
		UserID:  created.ID,
		Email:   created.Email,
		Message: "Registration successful, please verify your email",
	}, nil
}

// VerifyEmail implements auth.AuthService.
func (a *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	userData, err := a.UserRepository.GetByEmailVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	return a.UserRepository.VerifyEmail(ctx, userData.ID)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	var tokenResponse auth.TokenResponse

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.EmailVerified {
		return auth.TokenResponse{}, auth.ErrEmailNotVerified
	}

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(
			userData.ID, userData.Email, userData.CompanyID, userData.Role, userData.IsApproved)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Refresh implements auth.AuthService. Rotation is single-use: the old
// token is revoked in the same transaction that stores the new one, so a
// replayed refresh resolves to ErrSessionExpired exactly once per session.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	revoked, err := a.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrSessionExpired
	}

	token, err := a.Service.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrSessionExpired
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		if err := a.RevokeRefreshToken(txCtx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke old refresh token: %w", err)
		}

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(
			userData.ID, userData.Email, userData.CompanyID, userData.Role, userData.IsApproved)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	return a.MarkLoggedOut(ctx, refreshToken)
}

// Me implements auth.AuthService. The just-logged-out marker is consumed by
// this read and never reported twice.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (user.ProfileResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	profile := user.NewProfileResponse(userData)

	justLoggedOut, err := a.ConsumeJustLoggedOut(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	profile.JustLoggedOut = justLoggedOut

	return profile, nil
}
