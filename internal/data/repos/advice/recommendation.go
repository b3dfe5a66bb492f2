package advice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type RecommendationRepo interface {
	Create(dbc dbctx.Context, recs []*advice.Recommendation) ([]*advice.Recommendation, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*advice.Recommendation, error)
	// MarkRead flags one of the owner's recommendations as read. It reports
	// false when no row matched both id and owner.
	MarkRead(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	repoLog := baseLog.With("repo", "RecommendationRepo")
	return &recommendationRepo{db: db, log: repoLog}
}

func (r *recommendationRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *recommendationRepo) Create(dbc dbctx.Context, recs []*advice.Recommendation) ([]*advice.Recommendation, error) {
	if len(recs) == 0 {
		return []*advice.Recommendation{}, nil
	}
	if err := r.tx(dbc).Create(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*advice.Recommendation, error) {
	var results []*advice.Recommendation
	q := r.tx(dbc).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recommendationRepo) MarkRead(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	res := r.tx(dbc).Model(&advice.Recommendation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *recommendationRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).Where("user_id = ?", userID).Delete(&advice.Recommendation{}).Error
}
