package domain

import (
	"log/slog"
	"strings"
)

// Book is a catalog record as exchanged with the catalog server.
// Field names on the wire keep the server's Spanish vocabulary.
type Book struct {
	// Code is assigned by the server and never changes after creation.
	Code      string `json:"codigo" yaml:"codigo"`
	Title     string `json:"titulo" yaml:"titulo"`
	Author    string `json:"autor" yaml:"autor"`
	Year      int    `json:"anio" yaml:"anio"`
	Category  string `json:"categoria" yaml:"categoria"`
	PageCount int    `json:"numPaginas" yaml:"numPaginas"`
}

// BookInput is the mutable field set of a Book, used as the body of
// create and update calls.
type BookInput struct {
	Title     string `json:"titulo"`
	Author    string `json:"autor"`
	Year      int    `json:"anio"`
	Category  string `json:"categoria"`
	PageCount int    `json:"numPaginas"`
}

// Input returns the mutable fields of b.
func (b Book) Input() BookInput {
	return BookInput{
		Title:     b.Title,
		Author:    b.Author,
		Year:      b.Year,
		Category:  b.Category,
		PageCount: b.PageCount,
	}
}

// WithCode returns a Book carrying in's fields under the given code.
func (in BookInput) WithCode(code string) Book {
	return Book{
		Code:      code,
		Title:     in.Title,
		Author:    in.Author,
		Year:      in.Year,
		Category:  in.Category,
		PageCount: in.PageCount,
	}
}

// ValidateCode checks that a book code is usable as a path segment.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrMissingArgument.WithDetails("book code is required")
	}
	return nil
}

// ValidateCategory checks that a category is usable as a path segment.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrMissingArgument.WithDetails("category is required")
	}
	return nil
}

// Credentials is the identifier/secret pair exchanged for a session token.
// It is never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// String hides the password from formatted output.
func (c Credentials) String() string {
	return "Credentials{Email: " + c.Email + ", Password: ***}"
}

// LogValue implements slog.LogValuer; only the email is logged.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", c.Email))
}
