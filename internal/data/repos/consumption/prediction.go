package consumption

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type PredictionRepo interface {
	Create(dbc dbctx.Context, preds []*consumption.Prediction) ([]*consumption.Prediction, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*consumption.Prediction, error)
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error
}

type predictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPredictionRepo(db *gorm.DB, baseLog *logger.Logger) PredictionRepo {
	repoLog := baseLog.With("repo", "PredictionRepo")
	return &predictionRepo{db: db, log: repoLog}
}

func (r *predictionRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *predictionRepo) Create(dbc dbctx.Context, preds []*consumption.Prediction) ([]*consumption.Prediction, error) {
	if len(preds) == 0 {
		return []*consumption.Prediction{}, nil
	}
	if err := r.tx(dbc).Create(&preds).Error; err != nil {
		return nil, err
	}
	return preds, nil
}

// ListByUser returns the newest predictions first.
func (r *predictionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*consumption.Prediction, error) {
	var results []*consumption.Prediction
	q := r.tx(dbc).
		Where("user_id = ?", userID).
		Order("prediction_date DESC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *predictionRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).Where("user_id = ?", userID).Delete(&consumption.Prediction{}).Error
}
