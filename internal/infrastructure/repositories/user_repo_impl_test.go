package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndLookups(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		FirstName:    "Asha",
		LastName:     "Rao",
		Email:        "asha@example.com",
		PasswordHash: "hash",
		Role:         entities.UserRoleCustomer,
		IsActive:     true,
		ReferralCode: null.StringFrom("ABCD1234"),
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", byID.Email)
	require.Equal(t, entities.UserRoleCustomer, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byCode, err := repo.GetByReferralCode(ctx, "ABCD1234")
	require.NoError(t, err)
	require.Equal(t, user.ID, byCode.ID)
	require.False(t, byCode.ReferralUsed)

	exists, err := repo.ReferralCodeExists(ctx, "ABCD1234")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ReferralCodeExists(ctx, "ZZZZ9999")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUserRepository_MarkReferralUsed(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		FirstName: "Ravi", LastName: "Kumar", Email: "ravi@example.com",
		PasswordHash: "hash", Role: entities.UserRoleVendor, IsActive: true,
		ReferralCode: null.StringFrom("WXYZ5678"),
	}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.MarkReferralUsed(ctx, user.ID))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.ReferralUsed)

	// second claim loses the conditional update
	require.ErrorIs(t, repo.MarkReferralUsed(ctx, user.ID), domainerrors.ErrReferralCodeExhausted)
	require.ErrorIs(t, repo.MarkReferralUsed(ctx, uuid.New()), domainerrors.ErrReferralCodeExhausted)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByReferralCode(ctx, "NOPE0000")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
