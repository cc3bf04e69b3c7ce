package services

import (
	"context"
	"fmt"
	"time"

	"nerdfootball-go/logging"
	"nerdfootball-go/models"
)

// AdminSeedStore is the seeder's view of the user store.
type AdminSeedStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// UserSeeder provisions the initial admin account on startup so a fresh
// deployment is usable without poking the database by hand.
type UserSeeder struct {
	users  AdminSeedStore
	logger *logging.Logger
}

// NewUserSeeder creates a new user seeder.
func NewUserSeeder(users AdminSeedStore) *UserSeeder {
	return &UserSeeder{
		users:  users,
		logger: logging.WithPrefix("UserSeeder"),
	}
}

// SeedAdmin creates the admin user if no account with that email exists.
// Existing accounts are left untouched, so a restart never resets a changed
// password.
func (s *UserSeeder) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.logger.Debug("No admin credentials configured, skipping seed")
		return nil
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err == nil && existing != nil {
		s.logger.Debugf("Admin account %s already exists", email)
		return nil
	}

	user := &models.User{
		Name:      "admin",
		Email:     email,
		Admin:     true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := user.HashPassword(password); err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Infof("Created admin account %s", email)
	return nil
}
