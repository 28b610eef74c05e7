// Package users persists registered identities.
package users

import (
	"context"

	"github.com/gatehouse-dev/gatehouse/internal/server/models"
)

// Repository is the narrow persistence contract the auth core needs.
type Repository interface {
	// Create inserts a new identity. Returns common.ErrorAlreadyExists
	// when the email uniqueness constraint is violated; any other failure
	// is a storage error.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)

	// FindByEmail is an exact-match lookup. Absence is not a failure: it
	// is reported as common.ErrorNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
