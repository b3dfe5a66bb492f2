package consumption

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type ReadingRepo interface {
	// Upsert stores r under its (user, period) key. created reports whether a
	// new row was inserted; otherwise the existing row's quantities were replaced.
	Upsert(dbc dbctx.Context, r *consumption.Reading) (stored *consumption.Reading, created bool, err error)
	GetByPeriod(dbc dbctx.Context, userID uuid.UUID, year, month int, week *int) (*consumption.Reading, error)
	ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*consumption.Reading, error)
	ListRecentMonthly(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*consumption.Reading, error)
	ListByUserInRange(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*consumption.Reading, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*consumption.Reading, error)
	ListInRange(dbc dbctx.Context, start, end time.Time) ([]*consumption.Reading, error)
	ListAll(dbc dbctx.Context) ([]*consumption.Reading, error)
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error
}

type readingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadingRepo(db *gorm.DB, baseLog *logger.Logger) ReadingRepo {
	repoLog := baseLog.With("repo", "ReadingRepo")
	return &readingRepo{db: db, log: repoLog}
}

func (r *readingRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *readingRepo) Upsert(dbc dbctx.Context, in *consumption.Reading) (*consumption.Reading, bool, error) {
	if in == nil {
		return nil, false, errors.New("nil reading")
	}
	transaction := r.tx(dbc)

	existing, err := r.GetByPeriod(dbc, in.UserID, in.Year, in.Month, in.WeekNumber)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return r.overwrite(transaction, existing, in)
	}

	// The nested transaction becomes a savepoint inside an outer transaction,
	// so a lost insert race leaves the caller's transaction usable.
	err = transaction.Transaction(func(inner *gorm.DB) error {
		return inner.Create(in).Error
	})
	if err == nil {
		return in, true, nil
	}
	if !isUniqueViolation(err) {
		return nil, false, err
	}

	r.log.Debug("reading insert raced, updating instead", "user_id", in.UserID, "period", consumption.NaturalKey(in.Year, in.Month, in.WeekNumber))
	existing, err = r.GetByPeriod(dbc, in.UserID, in.Year, in.Month, in.WeekNumber)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, errors.New("reading vanished after unique violation")
	}
	return r.overwrite(transaction, existing, in)
}

func (r *readingRepo) overwrite(transaction *gorm.DB, existing, in *consumption.Reading) (*consumption.Reading, bool, error) {
	existing.Electricity = in.Electricity
	existing.Water = in.Water
	existing.Gas = in.Gas
	existing.IsAdvancedMode = in.IsAdvancedMode
	existing.ReadingDate = in.ReadingDate
	if err := transaction.Save(existing).Error; err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *readingRepo) GetByPeriod(dbc dbctx.Context, userID uuid.UUID, year, month int, week *int) (*consumption.Reading, error) {
	var out consumption.Reading
	err := r.tx(dbc).
		Where("user_id = ? AND natural_key = ?", userID, consumption.NaturalKey(year, month, week)).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

// ListRecent returns the newest readings first, by period then insertion.
func (r *readingRepo) ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*consumption.Reading, error) {
	var results []*consumption.Reading
	q := r.tx(dbc).
		Where("user_id = ?", userID).
		Order("year DESC").
		Order("month DESC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListRecentMonthly is ListRecent restricted to monthly readings; weekly
// advanced-mode rows are skipped.
func (r *readingRepo) ListRecentMonthly(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*consumption.Reading, error) {
	var results []*consumption.Reading
	q := r.tx(dbc).
		Where("user_id = ? AND week_number IS NULL", userID).
		Order("year DESC").
		Order("month DESC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByUserInRange returns readings whose reading_date falls in [start, end),
// newest first.
func (r *readingRepo) ListByUserInRange(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*consumption.Reading, error) {
	var results []*consumption.Reading
	if err := r.tx(dbc).
		Where("user_id = ? AND reading_date >= ? AND reading_date < ?", userID, start.UTC(), end.UTC()).
		Order("reading_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *readingRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*consumption.Reading, error) {
	var results []*consumption.Reading
	if err := r.tx(dbc).
		Where("user_id = ?", userID).
		Order("year ASC").
		Order("month ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *readingRepo) ListInRange(dbc dbctx.Context, start, end time.Time) ([]*consumption.Reading, error) {
	var results []*consumption.Reading
	if err := r.tx(dbc).
		Where("reading_date >= ? AND reading_date < ?", start.UTC(), end.UTC()).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *readingRepo) ListAll(dbc dbctx.Context) ([]*consumption.Reading, error) {
	var results []*consumption.Reading
	if err := r.tx(dbc).Order("year ASC").Order("month ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *readingRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).Where("user_id = ?", userID).Delete(&consumption.Reading{}).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
