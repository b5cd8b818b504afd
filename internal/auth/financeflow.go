package auth

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/auth"
	"github.com/financeflow/financeflow/internal/domain/user"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "financeflow"

// tokenClaims is the payload of an access token
type tokenClaims struct {
	UserID string         `json:"user_id"`
	Role   types.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type financeFlowAuth struct {
	AuthConfig config.AuthConfig
	now        func() time.Time
}

func NewFinanceFlowAuth(cfg *config.Configuration) *financeFlowAuth {
	return &financeFlowAuth{
		AuthConfig: cfg.Auth,
		now:        time.Now,
	}
}

func (f *financeFlowAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderFinanceFlow
}

func (f *financeFlowAuth) SignUp(ctx context.Context, req AuthRequest, u *user.User) (*AuthResponse, error) {
	if req.Password == "" {
		return nil, ierr.NewError("password is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}

	authToken, err := f.IssueToken(u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ProviderToken: string(hashedPassword),
		AuthToken:     authToken,
	}, nil
}

func (f *financeFlowAuth) Login(ctx context.Context, req AuthRequest, u *user.User, userAuthInfo *auth.Auth) (*AuthResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(userAuthInfo.Token), []byte(req.Password)); err != nil {
		return nil, ierr.NewError("invalid password").
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}

	authToken, err := f.IssueToken(u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ProviderToken: userAuthInfo.Token,
		AuthToken:     authToken,
	}, nil
}

// IssueToken signs a stateless HS256 token carrying the user id and role
func (f *financeFlowAuth) IssueToken(u *user.User) (string, error) {
	now := f.now()
	claims := tokenClaims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.AuthConfig.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(f.AuthConfig.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return token, nil
}

func (f *financeFlowAuth) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsedToken, err := parser.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(f.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	if !parsedToken.Valid || claims.UserID == "" {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	role := claims.Role
	if role == "" {
		role = types.UserRoleOwner
	}

	result := &auth.Claims{UserID: claims.UserID, Role: role}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}
