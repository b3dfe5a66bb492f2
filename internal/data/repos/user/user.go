package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, u *user.User) (*user.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*user.User, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*user.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*user.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	ListAll(dbc dbctx.Context) ([]*user.User, error)
	ListWithRegion(dbc dbctx.Context) ([]*user.User, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *userRepo) Create(dbc dbctx.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("nil user")
	}
	u.Email = normalizeEmail(u.Email)
	if err := r.tx(dbc).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID returns nil, nil when no user matches.
func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	err := r.tx(dbc).Where("id = ?", id).Limit(1).Find(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*user.User, error) {
	var results []*user.User
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.tx(dbc).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*user.User, error) {
	var u user.User
	err := r.tx(dbc).Where("email = ?", normalizeEmail(email)).Limit(1).Find(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := r.tx(dbc).Model(&user.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) ListAll(dbc dbctx.Context) ([]*user.User, error) {
	var results []*user.User
	if err := r.tx(dbc).Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) ListWithRegion(dbc dbctx.Context) ([]*user.User, error) {
	var results []*user.User
	if err := r.tx(dbc).
		Where("region IS NOT NULL AND region <> ''").
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.tx(dbc).Model(&user.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *userRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return r.tx(dbc).Where("id = ?", id).Delete(&user.User{}).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
