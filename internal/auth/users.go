package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/validation"
)

// UpdateUserInput is a profile update. Password is optional.
type UpdateUserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// ListUsers returns every user. Requires view-all-users.
func (s *Service) ListUsers(ctx context.Context, caller *Principal) ([]models.User, error) {
	if !caller.Can(models.PermViewAllUsers) {
		return nil, apperrors.Forbidden("You are not authorized to view all users.")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("db error", err)
	}
	return users, nil
}

// UpdateUser changes the caller's own profile. The password is rehashed only when provided.
func (s *Service) UpdateUser(ctx context.Context, caller *Principal, targetID int64, in UpdateUserInput) (*models.User, error) {
	if caller == nil || caller.User == nil {
		return nil, apperrors.Unauthorized("Not authenticated")
	}
	if !caller.Owns(targetID) {
		return nil, apperrors.Forbidden("You cannot update another user's information")
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, in.Email, targetID)
	if err != nil {
		return nil, apperrors.Internal("db error", err)
	}
	if taken {
		return nil, emailTaken()
	}

	u, err := s.users.GetByID(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Internal("db error", err)
	}

	u.Name = in.Name
	u.Email = in.Email
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
		if err != nil {
			return nil, apperrors.Internal("internal error", err)
		}
		u.Password = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, apperrors.Internal("db error", err)
	}
	return u, nil
}

// DeleteUser removes a user. Requires delete-users.
func (s *Service) DeleteUser(ctx context.Context, caller *Principal, targetID int64) error {
	if !caller.Can(models.PermDeleteUsers) {
		return apperrors.Forbidden("You are not authorized to delete this user.")
	}
	err := s.users.Delete(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("User not found")
	}
	if err != nil {
		return apperrors.Internal("db error", err)
	}
	return nil
}
