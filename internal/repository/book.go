package repository

import (
	"context"
	"errors"

	"pustaka/internal/models"

	"gorm.io/gorm"
)

// BookRepository defines persistence operations for books. Soft-deleted rows
// are invisible to every method here; GORM's default scope filters them.
type BookRepository interface {
	List(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	TitleTaken(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	SoftDelete(ctx context.Context, id uint) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository returns a new BookRepository implementation.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, models.NewInvalidDataError(err)
	}
	return books, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Book", id)
		}
		return nil, models.NewInvalidDataError(err)
	}
	return &book, nil
}

// TitleTaken reports whether a live (non-deleted) book already uses the title.
func (r *bookRepository) TitleTaken(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("title = ?", title).Count(&count).Error; err != nil {
		return false, models.NewInvalidDataError(err)
	}
	return count > 0, nil
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("The title has already been taken.")
		}
		return models.NewInvalidDataError(err)
	}
	return nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("The title has already been taken.")
		}
		return models.NewInvalidDataError(err)
	}
	return nil
}

// SoftDelete marks the book deleted. The row is retained with deleted_at set.
func (r *bookRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if result.Error != nil {
		return models.NewInvalidDataError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Book", id)
	}
	return nil
}
