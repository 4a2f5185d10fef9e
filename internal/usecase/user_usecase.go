package usecase

import (
	"context"
	"errors"
	"fmt"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type userUsecase struct {
	userRepo domain.UserRepository
	tokens   domain.TokenIssuer
}

func NewUserUsecase(userRepo domain.UserRepository, tokens domain.TokenIssuer) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context, opts domain.ListOptions) ([]*domain.User, error) {
	users, err := u.userRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error retrieving all users: %w", err)
	}
	return users, nil
}

func (u *userUsecase) CreateUser(ctx context.Context, user *domain.User, plainPassword string) (string, error) {
	user.Email = normalizeEmail(user.Email)
	if err := user.SetPassword(plainPassword); err != nil {
		return "", fmt.Errorf("error creating user: %w", err)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return "", storeError(err, "error creating user", "")
	}

	return u.tokens.Issue(user.AccountID(), domain.KindUser)
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "error retrieving user "+id, "No user found with id of "+id)
	}
	return user, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, p domain.Principal, id string, update domain.UserUpdate) (*domain.User, error) {
	if !p.CanModify(id) {
		return nil, apperror.Forbidden("Not allowed to update this user")
	}
	if update.Admin != nil && !p.IsAdmin() {
		return nil, apperror.Forbidden("Only admins can change the admin flag")
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email
	}

	user, err := u.userRepo.Update(ctx, id, update)
	if err != nil {
		return nil, storeError(err, "error updating user "+id, "No user found with id of "+id)
	}
	return user, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	if !p.CanModify(id) {
		return nil, apperror.Forbidden("Not allowed to delete this user")
	}

	user, err := u.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "error deleting user "+id, "No user found with id of "+id)
	}
	return user, nil
}

func (u *userUsecase) DeleteUsers(ctx context.Context) (int64, error) {
	n, err := u.userRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error deleting all users: %w", err)
	}
	return n, nil
}

// EnsureAdmin makes sure an admin account with this email exists, promoting
// an existing user if needed. The password of an existing account is kept.
func (u *userUsecase) EnsureAdmin(ctx context.Context, email, plainPassword string) error {
	email = normalizeEmail(email)

	acc, err := u.userRepo.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		if acc.Role() == domain.RoleAdmin {
			return nil
		}
		admin := true
		if _, err := u.userRepo.Update(ctx, acc.AccountID(), domain.UserUpdate{Admin: &admin}); err != nil {
			return fmt.Errorf("error promoting admin: %w", err)
		}
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("error looking up admin: %w", err)
	}

	user := &domain.User{
		UserName:  "admin",
		FirstName: "Admin",
		LastName:  "Admin",
		Email:     email,
		Admin:     true,
	}
	if err := user.SetPassword(plainPassword); err != nil {
		return err
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}
