package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/errs"
	"github.com/hondana-app/library-service/internal/model"
)

// CreateRental is the single atomic check-then-create for checkout: the
// partial unique index on (book_isbn) where returned_date is null rejects a
// second open rental, and the FK to book rejects unknown ISBNs.
func (r *repository) CreateRental(ctx context.Context, isbn int64, userID int, checkout, due time.Time) (model.RentalRecord, error) {
	query, args, err := qb.Insert(rentalTableName).
		Columns("book_isbn", "user_id", "checkout_date", "due_date").
		Values(isbn, userID, checkout, due).
		Suffix("returning id, book_isbn, user_id, checkout_date, due_date, returned_date").
		ToSql()
	if err != nil {
		return model.RentalRecord{}, err
	}

	var record model.RentalRecord
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if isUniqueViolation(err) {
			return model.RentalRecord{}, errs.ErrAlreadyRented
		}
		if _, ok := fkConstraint(err); ok {
			return model.RentalRecord{}, errs.ErrNotFound
		}
		r.log.Error("CreateRental", zap.String("q", query), zap.Any("args", args))
		return model.RentalRecord{}, err
	}
	return record, nil
}

func (r *repository) GetRental(ctx context.Context, id int) (model.RentalRecord, error) {
	query, args, err := qb.Select("id", "book_isbn", "user_id", "checkout_date", "due_date", "returned_date").
		From(rentalTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.RentalRecord{}, err
	}

	var record model.RentalRecord
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RentalRecord{}, errs.ErrNotFound
		}
		return model.RentalRecord{}, err
	}
	return record, nil
}

// CloseRental sets the return date only while the record is still open, so a
// concurrent double return loses here regardless of what the caller read.
func (r *repository) CloseRental(ctx context.Context, id int) (time.Time, error) {
	q := fmt.Sprintf(`update %s
	set returned_date = now()
where id = $1 and returned_date is null
returning returned_date`, rentalTableName)

	var returnedAt time.Time
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&returnedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, errs.ErrAlreadyReturned
		}
		return time.Time{}, err
	}
	return returnedAt, nil
}

func (r *repository) History(ctx context.Context, userID int) ([]model.HistoryRow, error) {
	query, args, err := qb.Select("r.id", "r.book_isbn", "b.title", "r.checkout_date", "r.due_date", "r.returned_date").
		From(rentalTableName+" r").
		Join(fmt.Sprintf("%s b on b.isbn = r.book_isbn", booksTableName)).
		Where(sq.Eq{"r.user_id": userID}).
		OrderBy("r.checkout_date desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows := make([]model.HistoryRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
