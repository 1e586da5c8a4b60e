package usecases

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/metrics"
	"rentpe.backend/pkg/crypto"
	"rentpe.backend/pkg/jwt"
	"rentpe.backend/pkg/logger"
	"rentpe.backend/pkg/utils"
)

const referralCodeAttempts = 5

// BonusNotifier mails the referrer once their bonus has committed
type BonusNotifier interface {
	SendReferralBonusNotice(ctx context.Context, to, name string, bonus decimal.Decimal)
}

// AuthUsecase handles registration, login and referral bonus issuance.
// Registration, referral marking and both bonus credits commit as one unit.
type AuthUsecase struct {
	uow           repositories.UnitOfWork
	userRepo      repositories.UserRepository
	walletUsecase *WalletUsecase
	jwtService    *jwt.JWTService
	notices       BonusNotifier
	newUserBonus  decimal.Decimal
	referrerBonus decimal.Decimal
}

// NewAuthUsecase creates a new auth usecase. notices may be nil.
func NewAuthUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	walletUsecase *WalletUsecase,
	jwtService *jwt.JWTService,
	notices BonusNotifier,
	newUserBonus, referrerBonus decimal.Decimal,
) *AuthUsecase {
	return &AuthUsecase{
		uow:           uow,
		userRepo:      userRepo,
		walletUsecase: walletUsecase,
		jwtService:    jwtService,
		notices:       notices,
		newUserBonus:  newUserBonus,
		referrerBonus: referrerBonus,
	}
}

// Register creates a user with a fresh referral code. A supplied referral
// code must belong to a referrer whose code is still unused; a qualifying
// referral credits both wallets atomically with the user row.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	role, ok := entities.ParseUserRole(strings.ToUpper(input.Role))
	if !ok {
		return nil, domainerrors.ErrInvalidInput
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if err != domainerrors.ErrNotFound {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if input.CompanyName != "" {
		user.CompanyName.SetValid(input.CompanyName)
	}

	suppliedCode := strings.ToUpper(strings.TrimSpace(input.ReferralCode))

	var referrer *entities.User
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		code, err := u.generateUniqueReferralCode(txCtx)
		if err != nil {
			return err
		}
		user.ReferralCode.SetValid(code)

		if suppliedCode != "" {
			referrer, err = u.userRepo.GetByReferralCode(txCtx, suppliedCode)
			if err != nil {
				if err == domainerrors.ErrNotFound {
					return domainerrors.ErrInvalidReferralCode
				}
				return err
			}
			if referrer.ReferralUsed {
				return domainerrors.ErrReferralCodeExhausted
			}
			user.ReferredBy = &referrer.ID
		}

		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		if referrer == nil {
			return nil
		}

		if err := u.userRepo.MarkReferralUsed(txCtx, referrer.ID); err != nil {
			return err
		}

		bonusRef := entities.TransactionRef{Type: entities.ReferenceReferralBonus, ID: &referrer.ID}
		if _, err := u.walletUsecase.Credit(txCtx, user.ID, u.newUserBonus,
			bonusRef, "Referral signup bonus", nil); err != nil {
			return err
		}

		referrerRef := entities.TransactionRef{Type: entities.ReferenceReferralBonus, ID: &user.ID}
		if _, err := u.walletUsecase.Credit(txCtx, referrer.ID, u.referrerBonus,
			referrerRef, "Referral bonus for "+user.FirstName, nil); err != nil {
			return err
		}

		metrics.RecordReferralBonus()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
		zap.Bool("referred", user.ReferredBy != nil))

	if referrer != nil && u.notices != nil {
		u.notices.SendReferralBonusNotice(ctx, referrer.Email, referrer.FirstName, u.referrerBonus)
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Login verifies credentials and issues a token pair
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domainerrors.ErrForbidden
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// ValidateReferralCode is the non-mutating pre-check used by signup forms
func (u *AuthUsecase) ValidateReferralCode(ctx context.Context, code string) (*entities.ReferralValidation, error) {
	referrer, err := u.userRepo.GetByReferralCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return &entities.ReferralValidation{Valid: false, Message: "Invalid referral code"}, nil
		}
		return nil, err
	}
	if referrer.ReferralUsed {
		return &entities.ReferralValidation{Valid: false, Message: "Referral code already used"}, nil
	}

	return &entities.ReferralValidation{
		Valid:        true,
		Message:      "Referral code is valid",
		ReferrerName: referrer.FirstName + " " + referrer.LastName,
	}, nil
}

func (u *AuthUsecase) generateUniqueReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < referralCodeAttempts; i++ {
		code, err := utils.GenerateReferralCode()
		if err != nil {
			return "", err
		}
		exists, err := u.userRepo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", domainerrors.ErrReferralCodeGeneration
}
