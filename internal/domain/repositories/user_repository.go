package repositories

import (
	"context"

	"github.com/google/uuid"
	"rentpe.backend/internal/domain/entities"
)

// UserRepository defines the slice of user data operations the ledger
// needs: identity lookup plus the referral linkage fields.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entities.User, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	MarkReferralUsed(ctx context.Context, id uuid.UUID) error
}
