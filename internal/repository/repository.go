package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/model"
)

type CatalogRepository interface {
	CreateAuthor(ctx context.Context, name string) (model.NameRef, error)
	GetAuthor(ctx context.Context, id int) (model.Author, error)
	UpdateAuthor(ctx context.Context, id int, name string) (model.NameRef, error)
	DeleteAuthor(ctx context.Context, id int) error
	SearchAuthors(ctx context.Context, keyword string) ([]model.NameRef, error)

	CreatePublisher(ctx context.Context, name string) (model.NameRef, error)
	GetPublisher(ctx context.Context, id int) (model.Publisher, error)
	UpdatePublisher(ctx context.Context, id int, name string) (model.NameRef, error)
	DeletePublisher(ctx context.Context, id int) error
	SearchPublishers(ctx context.Context, keyword string) ([]model.NameRef, error)

	CreateBook(ctx context.Context, book model.Book) error
	GetBook(ctx context.Context, isbn int64) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) error
	DeleteBook(ctx context.Context, isbn int64) error
	CountBooks(ctx context.Context) (int, error)
	ListBooks(ctx context.Context, page, size int) ([]model.BookListRow, error)
	GetBookDetail(ctx context.Context, isbn int64) (model.BookDetailRow, error)
}

type RentalRepository interface {
	CreateRental(ctx context.Context, isbn int64, userID int, checkout, due time.Time) (model.RentalRecord, error)
	GetRental(ctx context.Context, id int) (model.RentalRecord, error)
	CloseRental(ctx context.Context, id int) (time.Time, error)
	History(ctx context.Context, userID int) ([]model.HistoryRow, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	UpdateUserName(ctx context.Context, id int, name string) error
}

type StatsRepository interface {
	ApplyRentalEvent(ctx context.Context, event model.RentalEvent) error
	GetRentalStats(ctx context.Context) ([]model.RentalStat, error)
}

//go:generate mockgen -destination=mocks/mock.go -package=mock_repository github.com/hondana-app/library-service/internal/repository Repository

type Repository interface {
	CatalogRepository
	RentalRepository
	UserRepository
	StatsRepository
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	authorTableName      = `author`
	publisherTableName   = `publisher`
	usersTableName       = `users`
	booksTableName       = `book`
	rentalTableName      = `rental_log`
	rentalStatsTableName = `rental_stats`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// fkConstraint returns the violated foreign-key constraint name, if any.
func fkConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
