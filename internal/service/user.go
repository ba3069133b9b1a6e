package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/hondana-app/library-service/internal/errs"
	"github.com/hondana-app/library-service/internal/model"
	"github.com/hondana-app/library-service/pkg/auth"
)

func (s *Service) RegisterUser(ctx context.Context, req model.RegisterUserRequest) error {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	if _, err := s.repo.CreateUser(ctx, req.Email, req.Name, hash); err != nil {
		return err
	}
	return nil
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	ok, err := verifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "verify password")
	}
	if !ok {
		return model.AuthResponse{}, errs.ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(s.jwtCfg.TTL)
	claims := &auth.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}
	claims.Profile.UserID = user.ID
	claims.Profile.Name = user.Name
	claims.Profile.IsAdmin = user.IsAdmin

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "sign token")
	}

	return model.AuthResponse{
		AccessToken: tokenString,
		ExpiresIn:   int(expirationTime.Unix()),
	}, nil
}

func (s *Service) ChangeUserName(ctx context.Context, userID int, name string) error {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Name == name {
		return errs.ErrSameName
	}
	return s.repo.UpdateUserName(ctx, userID, name)
}
