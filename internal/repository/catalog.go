package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/errs"
	"github.com/hondana-app/library-service/internal/model"
)

type namedRow struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	IsDeleted bool   `db:"is_deleted"`
}

// createNamed inserts into author/publisher. The partial unique index on
// (name) where not is_deleted is the authority on duplicates.
func (r *repository) createNamed(ctx context.Context, table, name string) (model.NameRef, error) {
	query, args, err := qb.Insert(table).
		Columns("name").
		Values(name).
		Suffix("returning id, name").
		ToSql()
	if err != nil {
		return model.NameRef{}, err
	}

	var ref model.NameRef
	if err := r.db.GetContext(ctx, &ref, query, args...); err != nil {
		if isUniqueViolation(err) {
			return model.NameRef{}, errs.ErrAlreadyExists
		}
		return model.NameRef{}, err
	}
	return ref, nil
}

func (r *repository) getNamed(ctx context.Context, table string, id int) (namedRow, error) {
	query, args, err := qb.Select("id", "name", "is_deleted").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return namedRow{}, err
	}

	var row namedRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return namedRow{}, errs.ErrNotFound
		}
		return namedRow{}, err
	}
	return row, nil
}

func (r *repository) updateNamed(ctx context.Context, table string, id int, name string) (model.NameRef, error) {
	query, args, err := qb.Update(table).
		Set("name", name).
		Where(sq.Eq{"id": id, "is_deleted": false}).
		Suffix("returning id, name").
		ToSql()
	if err != nil {
		return model.NameRef{}, err
	}

	var ref model.NameRef
	if err := r.db.GetContext(ctx, &ref, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.NameRef{}, errs.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.NameRef{}, errs.ErrAlreadyExists
		}
		return model.NameRef{}, err
	}
	return ref, nil
}

// deleteNamed soft-deletes in one statement: the NOT EXISTS guard keeps a row
// referenced by non-deleted books alive. Classification reads run only after
// the update reported zero rows.
func (r *repository) deleteNamed(ctx context.Context, table, fkColumn string, id int) error {
	q := fmt.Sprintf(`update %s set is_deleted = true
where id = $1 and not is_deleted
  and not exists (select 1 from %s where %s = $1 and not is_deleted)`,
		table, booksTableName, fkColumn)

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 1 {
		return nil
	}

	row, err := r.getNamed(ctx, table, id)
	if err != nil {
		return err
	}
	if row.IsDeleted {
		return errs.ErrAlreadyDeleted
	}
	return errs.ErrInUse
}

func (r *repository) searchNamed(ctx context.Context, table, keyword string) ([]model.NameRef, error) {
	query, args, err := qb.Select("id", "name").
		From(table).
		Where(sq.Like{"name": "%" + keyword + "%"}).
		Where(sq.Eq{"is_deleted": false}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	refs := make([]model.NameRef, 0)
	if err := r.db.SelectContext(ctx, &refs, query, args...); err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *repository) CreateAuthor(ctx context.Context, name string) (model.NameRef, error) {
	return r.createNamed(ctx, authorTableName, name)
}

func (r *repository) GetAuthor(ctx context.Context, id int) (model.Author, error) {
	row, err := r.getNamed(ctx, authorTableName, id)
	if err != nil {
		return model.Author{}, err
	}
	return model.Author{ID: row.ID, Name: row.Name, IsDeleted: row.IsDeleted}, nil
}

func (r *repository) UpdateAuthor(ctx context.Context, id int, name string) (model.NameRef, error) {
	return r.updateNamed(ctx, authorTableName, id, name)
}

func (r *repository) DeleteAuthor(ctx context.Context, id int) error {
	return r.deleteNamed(ctx, authorTableName, "author_id", id)
}

func (r *repository) SearchAuthors(ctx context.Context, keyword string) ([]model.NameRef, error) {
	return r.searchNamed(ctx, authorTableName, keyword)
}

func (r *repository) CreatePublisher(ctx context.Context, name string) (model.NameRef, error) {
	return r.createNamed(ctx, publisherTableName, name)
}

func (r *repository) GetPublisher(ctx context.Context, id int) (model.Publisher, error) {
	row, err := r.getNamed(ctx, publisherTableName, id)
	if err != nil {
		return model.Publisher{}, err
	}
	return model.Publisher{ID: row.ID, Name: row.Name, IsDeleted: row.IsDeleted}, nil
}

func (r *repository) UpdatePublisher(ctx context.Context, id int, name string) (model.NameRef, error) {
	return r.updateNamed(ctx, publisherTableName, id, name)
}

func (r *repository) DeletePublisher(ctx context.Context, id int) error {
	return r.deleteNamed(ctx, publisherTableName, "publisher_id", id)
}

func (r *repository) SearchPublishers(ctx context.Context, keyword string) ([]model.NameRef, error) {
	return r.searchNamed(ctx, publisherTableName, keyword)
}

// mapBookWriteErr converts constraint violations on book writes to the
// business error the violated constraint stands for.
func mapBookWriteErr(err error) error {
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if constraint, ok := fkConstraint(err); ok {
		if strings.Contains(constraint, "author") {
			return errs.ErrAuthorRef
		}
		return errs.ErrPublisherRef
	}
	return err
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) error {
	query, args, err := qb.Insert(booksTableName).
		Columns("isbn", "title", "author_id", "publisher_id", "publication_year", "publication_month").
		Values(book.ISBN, book.Title, book.AuthorID, book.PublisherID, book.PublicationYear, book.PublicationMonth).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.log.Debug("CreateBook", zap.String("q", query), zap.Any("args", args))
		return mapBookWriteErr(err)
	}
	return nil
}

func (r *repository) GetBook(ctx context.Context, isbn int64) (model.Book, error) {
	query, args, err := qb.Select("isbn", "title", "author_id", "publisher_id", "publication_year", "publication_month", "is_deleted").
		From(booksTableName).
		Where(sq.Eq{"isbn": isbn}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) error {
	query, args, err := qb.Update(booksTableName).
		Set("title", book.Title).
		Set("author_id", book.AuthorID).
		Set("publisher_id", book.PublisherID).
		Set("publication_year", book.PublicationYear).
		Set("publication_month", book.PublicationMonth).
		Where(sq.Eq{"isbn": book.ISBN, "is_deleted": false}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapBookWriteErr(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteBook(ctx context.Context, isbn int64) error {
	query, args, err := qb.Update(booksTableName).
		Set("is_deleted", true).
		Where(sq.Eq{"isbn": isbn, "is_deleted": false}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 1 {
		return nil
	}

	if _, err := r.GetBook(ctx, isbn); err != nil {
		return err
	}
	return errs.ErrAlreadyDeleted
}

func (r *repository) CountBooks(ctx context.Context) (int, error) {
	query, args, err := qb.Select("count(*)").
		From(booksTableName).
		Where(sq.Eq{"is_deleted": false}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ListBooks(ctx context.Context, page, size int) ([]model.BookListRow, error) {
	query, args, err := qb.Select("b.isbn", "b.title", "a.name as author_name", "b.publication_year", "b.publication_month").
		From(booksTableName+" b").
		Join(fmt.Sprintf("%s a on a.id = b.author_id", authorTableName)).
		Where(sq.Eq{"b.is_deleted": false}).
		OrderBy("b.publication_month desc", "b.publication_year desc").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)).
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	rows := make([]model.BookListRow, 0, size)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) GetBookDetail(ctx context.Context, isbn int64) (model.BookDetailRow, error) {
	query, args, err := qb.Select("b.isbn", "b.title", "a.name as author_name", "p.name as publisher_name",
		"b.publication_year", "b.publication_month").
		From(booksTableName+" b").
		Join(fmt.Sprintf("%s a on a.id = b.author_id", authorTableName)).
		Join(fmt.Sprintf("%s p on p.id = b.publisher_id", publisherTableName)).
		Where(sq.Eq{"b.isbn": isbn}).
		ToSql()
	if err != nil {
		return model.BookDetailRow{}, err
	}

	var row model.BookDetailRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookDetailRow{}, errs.ErrNotFound
		}
		return model.BookDetailRow{}, err
	}
	return row, nil
}
