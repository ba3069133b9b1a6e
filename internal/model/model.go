package model

import (
	"fmt"
	"time"
)

type Author struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	IsDeleted bool   `json:"-" db:"is_deleted"`
}

type Publisher struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	IsDeleted bool   `json:"-" db:"is_deleted"`
}

type User struct {
	ID           int    `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsAdmin      bool   `json:"isAdmin" db:"is_admin"`
}

type Book struct {
	ISBN             int64  `json:"isbn" db:"isbn"`
	Title            string `json:"title" db:"title"`
	AuthorID         int    `json:"authorId" db:"author_id"`
	PublisherID      int    `json:"publisherId" db:"publisher_id"`
	PublicationYear  int    `json:"publicationYear" db:"publication_year"`
	PublicationMonth int    `json:"publicationMonth" db:"publication_month"`
	IsDeleted        bool   `json:"-" db:"is_deleted"`
}

// RentalRecord is open while ReturnedDate is nil and immutable once it is set.
type RentalRecord struct {
	ID           int        `json:"id" db:"id"`
	BookISBN     int64      `json:"bookIsbn" db:"book_isbn"`
	UserID       int        `json:"userId" db:"user_id"`
	CheckoutDate time.Time  `json:"checkoutDate" db:"checkout_date"`
	DueDate      time.Time  `json:"dueDate" db:"due_date"`
	ReturnedDate *time.Time `json:"returnedDate" db:"returned_date"`
}

type NameRef struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// requests

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangeNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type RegisterNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateNameRequest struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type DeleteByIDRequest struct {
	ID int `json:"id" validate:"required"`
}

type BookRequest struct {
	ISBN             int64  `json:"isbn" validate:"required"`
	Title            string `json:"title" validate:"required"`
	AuthorID         int    `json:"author_id" validate:"required"`
	PublisherID      int    `json:"publisher_id" validate:"required"`
	PublicationYear  int    `json:"publication_year" validate:"required"`
	PublicationMonth int    `json:"publication_month" validate:"required,min=1,max=12"`
}

type DeleteBookRequest struct {
	ISBN int64 `json:"isbn" validate:"required"`
}

type RentalRequest struct {
	BookID int64 `json:"book_id" validate:"required"`
}

type ReturnRequest struct {
	ID int `json:"id" validate:"required"`
}

// responses

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type BookListItem struct {
	ISBN                 int64    `json:"isbn"`
	Title                string   `json:"title"`
	Author               NameOnly `json:"author"`
	PublicationYearMonth string   `json:"publication_year_month"`
}

type NameOnly struct {
	Name string `json:"name"`
}

type ListBooksResponse struct {
	Current  int            `json:"current"`
	LastPage int            `json:"lastPage"`
	Books    []BookListItem `json:"books"`
}

type BookDetailResponse struct {
	ISBN                 int64    `json:"isbn"`
	Title                string   `json:"title"`
	Author               NameOnly `json:"author"`
	Publisher            NameOnly `json:"publisher"`
	PublicationYearMonth string   `json:"publication_year_month"`
}

type RentalResponse struct {
	ID           int       `json:"id"`
	CheckoutDate time.Time `json:"checkoutDate"`
	DueDate      time.Time `json:"dueDate"`
}

type ReturnResponse struct {
	ID           int       `json:"id"`
	ReturnedDate time.Time `json:"returnedDate"`
	// BookISBN feeds the rental event stream, not the response body.
	BookISBN int64 `json:"-"`
}

type HistoryBook struct {
	ISBN int64  `json:"isbn"`
	Name string `json:"name"`
}

type HistoryItem struct {
	ID           int         `json:"id"`
	Book         HistoryBook `json:"book"`
	CheckoutDate time.Time   `json:"checkout_date"`
	DueDate      time.Time   `json:"due_date"`
	ReturnedDate *time.Time  `json:"returned_date"`
}

type HistoryResponse struct {
	History []HistoryItem `json:"history"`
}

type SearchAuthorsResponse struct {
	Authors []NameRef `json:"authors"`
}

type SearchPublishersResponse struct {
	Publishers []NameRef `json:"publishers"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// db join rows

type BookListRow struct {
	ISBN             int64  `db:"isbn"`
	Title            string `db:"title"`
	AuthorName       string `db:"author_name"`
	PublicationYear  int    `db:"publication_year"`
	PublicationMonth int    `db:"publication_month"`
}

type BookDetailRow struct {
	ISBN             int64  `db:"isbn"`
	Title            string `db:"title"`
	AuthorName       string `db:"author_name"`
	PublisherName    string `db:"publisher_name"`
	PublicationYear  int    `db:"publication_year"`
	PublicationMonth int    `db:"publication_month"`
}

type HistoryRow struct {
	ID           int        `db:"id"`
	BookISBN     int64      `db:"book_isbn"`
	Title        string     `db:"title"`
	CheckoutDate time.Time  `db:"checkout_date"`
	DueDate      time.Time  `db:"due_date"`
	ReturnedDate *time.Time `db:"returned_date"`
}

// rental events

type EventType string

const (
	EventCheckout EventType = "CHECKOUT"
	EventReturn   EventType = "RETURN"
)

type RentalEvent struct {
	EventUID string    `json:"event_uid"`
	Type     EventType `json:"type"`
	BookISBN int64     `json:"isbn"`
	UserID   int       `json:"user_id"`
	At       time.Time `json:"at"`
}

type RentalStat struct {
	BookISBN      int64 `json:"isbn" db:"book_isbn"`
	CheckoutCount int   `json:"checkoutCount" db:"checkout_count"`
	ReturnCount   int   `json:"returnCount" db:"return_count"`
}

type StatsResponse struct {
	TotalCheckouts int          `json:"totalCheckouts"`
	TotalReturns   int          `json:"totalReturns"`
	Books          []RentalStat `json:"books"`
}

// YearMonth renders the padded YYYY-MM shown in the book list.
func YearMonth(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// YearMonthDetail renders the unpadded variant used by the detail view.
func YearMonthDetail(year, month int) string {
	return fmt.Sprintf("%d-%d", year, month)
}
