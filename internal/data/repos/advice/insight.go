package advice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type InsightRepo interface {
	Create(dbc dbctx.Context, insights []*advice.CO2Insight) ([]*advice.CO2Insight, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*advice.CO2Insight, error)
	MarkRead(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error
}

type insightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
	repoLog := baseLog.With("repo", "InsightRepo")
	return &insightRepo{db: db, log: repoLog}
}

func (r *insightRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *insightRepo) Create(dbc dbctx.Context, insights []*advice.CO2Insight) ([]*advice.CO2Insight, error) {
	if len(insights) == 0 {
		return []*advice.CO2Insight{}, nil
	}
	if err := r.tx(dbc).Create(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (r *insightRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*advice.CO2Insight, error) {
	var results []*advice.CO2Insight
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

func (r *insightRepo) MarkRead(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	res := r.tx(dbc).Model(&advice.CO2Insight{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *insightRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).Where("user_id = ?", userID).Delete(&advice.CO2Insight{}).Error
}
