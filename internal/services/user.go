package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

var supportedLanguages = map[string]struct{}{
	"en": {},
	"ru": {},
	"kk": {},
}

// ProfileInput carries optional profile edits; nil fields are left unchanged.
type ProfileInput struct {
	Region   *string
	Role     *string
	Language *string
}

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*user.User, error)
	// UpdateProfile applies edits and marks registration complete.
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*user.User, error)
	// DeleteAccount removes the user and every row they own in one transaction.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db                 *gorm.DB
	log                *logger.Logger
	userRepo           repos.UserRepo
	readingRepo        repos.ReadingRepo
	predictionRepo     repos.PredictionRepo
	recommendationRepo repos.RecommendationRepo
	insightRepo        repos.InsightRepo
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	readingRepo repos.ReadingRepo,
	predictionRepo repos.PredictionRepo,
	recommendationRepo repos.RecommendationRepo,
	insightRepo repos.InsightRepo,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:                 db,
		log:                serviceLog,
		userRepo:           userRepo,
		readingRepo:        readingRepo,
		predictionRepo:     predictionRepo,
		recommendationRepo: recommendationRepo,
		insightRepo:        insightRepo,
	}
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := us.userRepo.GetByID(dbctx.From(ctx), userID)
	if err != nil {
		return nil, persistenceErr("load user", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, pkgerrors.ErrNotFound)
	}
	return u, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*user.User, error) {
	updates := map[string]interface{}{
		"is_registration_complete": true,
	}
	if in.Region != nil {
		region := strings.ToLower(strings.TrimSpace(*in.Region))
		if region == "" {
			updates["region"] = nil
		} else {
			updates["region"] = region
		}
	}
	if in.Role != nil {
		role := user.Role(strings.ToLower(strings.TrimSpace(*in.Role)))
		if !role.Valid() {
			return nil, invalidArg("unknown role %q", *in.Role)
		}
		updates["role"] = role
	}
	if in.Language != nil {
		lang := strings.ToLower(strings.TrimSpace(*in.Language))
		if _, ok := supportedLanguages[lang]; !ok {
			return nil, invalidArg("unsupported language %q", *in.Language)
		}
		updates["language"] = lang
	}

	var out *user.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		u, err := us.userRepo.GetByID(dbc, userID)
		if err != nil {
			return persistenceErr("load user", err)
		}
		if u == nil {
			return fmt.Errorf("user %s: %w", userID, pkgerrors.ErrNotFound)
		}
		if err := us.userRepo.UpdateFields(dbc, userID, updates); err != nil {
			return persistenceErr("update profile", err)
		}
		out, err = us.userRepo.GetByID(dbc, userID)
		if err != nil {
			return persistenceErr("reload user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		u, err := us.userRepo.GetByID(dbc, userID)
		if err != nil {
			return persistenceErr("load user", err)
		}
		if u == nil {
			return fmt.Errorf("user %s: %w", userID, pkgerrors.ErrNotFound)
		}
		if err := us.insightRepo.DeleteByUser(dbc, userID); err != nil {
			return persistenceErr("delete insights", err)
		}
		if err := us.recommendationRepo.DeleteByUser(dbc, userID); err != nil {
			return persistenceErr("delete recommendations", err)
		}
		if err := us.predictionRepo.DeleteByUser(dbc, userID); err != nil {
			return persistenceErr("delete predictions", err)
		}
		if err := us.readingRepo.DeleteByUser(dbc, userID); err != nil {
			return persistenceErr("delete readings", err)
		}
		if err := us.userRepo.Delete(dbc, userID); err != nil {
			return persistenceErr("delete user", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	us.log.Info("account deleted", "user_id", userID)
	return nil
}
