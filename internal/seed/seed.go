// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"time"

	"pustaka/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser persists a demo user with the given password.
func (f *Factory) CreateUser(password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:          gofakeit.Name(),
		Email:         gofakeit.Email(),
		Password:      string(hash),
		RememberToken: gofakeit.LetterN(10),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateBook persists a demo book owned by the given user. The title gets a
// unique suffix so repeated seeding never trips the uniqueness constraint.
func (f *Factory) CreateBook(user *models.User, overrides ...func(*models.Book)) (*models.Book, error) {
	book := &models.Book{
		Title:           fmt.Sprintf("%s (%s)", gofakeit.BookTitle(), gofakeit.LetterN(6)),
		Author:          gofakeit.BookAuthor(),
		Publisher:       gofakeit.Company(),
		PublicationYear: fmt.Sprintf("%d", gofakeit.Year()),
		Cover:           fmt.Sprintf("https://picsum.photos/seed/%s/400/600", gofakeit.UUID()),
		Description:     gofakeit.Paragraph(1, 3, 10, " "),
		Price:           gofakeit.Price(25000, 250000),
	}
	if user != nil {
		book.CreatedByID = &user.ID
	}

	for _, fn := range overrides {
		fn(book)
	}

	if err := f.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// Run populates the database with the given number of demo users, each owning
// a handful of books.
func (f *Factory) Run(users, booksPerUser int) error {
	for i := 0; i < users; i++ {
		user, err := f.CreateUser("password123")
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		for j := 0; j < booksPerUser; j++ {
			if _, err := f.CreateBook(user); err != nil {
				return fmt.Errorf("seed book: %w", err)
			}
		}
	}
	return nil
}
