package service

import (
	"context"

	"github.com/financeflow/financeflow/internal/api/dto"
	authProvider "github.com/financeflow/financeflow/internal/auth"
	"github.com/financeflow/financeflow/internal/domain/auth"
	"github.com/financeflow/financeflow/internal/domain/user"
	ierr "github.com/financeflow/financeflow/internal/errors"
)

type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
	authProvider authProvider.Provider
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
		authProvider:  authProvider.NewProvider(params.Config),
	}
}

// SignUp creates a new owner account with its credential record and returns an auth token
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	newUser := user.NewUser(req.Email)

	existingUser, err := s.UserRepo.GetByEmail(ctx, newUser.Email)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existingUser != nil {
		return nil, ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			WithReportableDetails(map[string]interface{}{
				"email": newUser.Email,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	authResponse, err := s.authProvider.SignUp(ctx, authProvider.AuthRequest{
		Email:    newUser.Email,
		Password: req.Password,
	}, newUser)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.UserRepo.Create(ctx, newUser); err != nil {
			return err
		}

		record := auth.NewAuth(newUser.ID, s.authProvider.GetProvider(), authResponse.ProviderToken)
		if err := s.AuthRepo.CreateAuth(ctx, record); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create authentication record").
				Mark(ierr.ErrStoreUnavailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user signed up", "user_id", newUser.ID)

	return &dto.AuthResponse{
		Token: authResponse.AuthToken,
		User:  dto.NewUserResponse(newUser),
	}, nil
}

// Login authenticates a user and returns an auth token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials(err)
		}
		return nil, err
	}

	record, err := s.AuthRepo.GetAuthByUserID(ctx, u.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials(err)
		}
		return nil, err
	}

	authResponse, err := s.authProvider.Login(ctx, authProvider.AuthRequest{
		Email:    u.Email,
		Password: req.Password,
	}, u, record)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: authResponse.AuthToken,
		User:  dto.NewUserResponse(u),
	}, nil
}

func invalidCredentials(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid email or password").
		Mark(ierr.ErrUnauthorized)
}
