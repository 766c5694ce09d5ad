package repository

import (
	"context"
	"testing"

	"pustaka/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	book := &models.Book{
		Title:           "Makanan bersih",
		Author:          "Yobel Kimtoputra",
		Publisher:       "Ukrida Press",
		PublicationYear: "2023",
		Price:           95000,
	}
	require.NoError(t, repo.Create(ctx, book))
	require.NotZero(t, book.ID)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Makanan bersih", got.Title)
	assert.Equal(t, "Yobel Kimtoputra", got.Author)
	assert.Equal(t, float64(95000), got.Price)
}

func TestBookGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestBookListExcludesSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	first := &models.Book{Title: "First", Author: "A"}
	second := &models.Book{Title: "Second", Author: "B"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.SoftDelete(ctx, first.ID))

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Second", books[0].Title)
}

func TestBookSoftDeleteRetainsRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	book := &models.Book{Title: "Kept around", Author: "A"}
	require.NoError(t, repo.Create(ctx, book))
	require.NoError(t, repo.SoftDelete(ctx, book.ID))

	// Invisible through the repository
	_, err := repo.GetByID(ctx, book.ID)
	require.Error(t, err)

	// But physically retained with the deletion marker set
	var raw models.Book
	require.NoError(t, db.Unscoped().First(&raw, book.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestBookSoftDeleteMissingOrAlreadyDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	err := repo.SoftDelete(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)

	book := &models.Book{Title: "Once", Author: "A"}
	require.NoError(t, repo.Create(ctx, book))
	require.NoError(t, repo.SoftDelete(ctx, book.ID))

	err = repo.SoftDelete(ctx, book.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestBookTitleTakenScopedToLiveRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	book := &models.Book{Title: "Reusable", Author: "A"}
	require.NoError(t, repo.Create(ctx, book))

	taken, err := repo.TitleTaken(ctx, "Reusable")
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, repo.SoftDelete(ctx, book.ID))

	// A soft-deleted book no longer blocks its title.
	taken, err = repo.TitleTaken(ctx, "Reusable")
	require.NoError(t, err)
	assert.False(t, taken)

	// And a new book may claim it.
	require.NoError(t, repo.Create(ctx, &models.Book{Title: "Reusable", Author: "B"}))
}

func TestBookCreateDuplicateTitleMapsToValidationError(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Book{Title: "Unique once", Author: "A"}))

	err := repo.Create(ctx, &models.Book{Title: "Unique once", Author: "B"})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "The title has already been taken.", appErr.Message)
}

func TestBookUpdateOverwritesFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	book := &models.Book{Title: "Before", Author: "A", Price: 10}
	require.NoError(t, repo.Create(ctx, book))

	book.Fill(models.BookFields{
		Title:  "After",
		Author: "B",
		Price:  20,
	})
	require.NoError(t, repo.Update(ctx, book))

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, "B", got.Author)
	assert.Equal(t, float64(20), got.Price)
	assert.Empty(t, got.Publisher, "unset fillable fields are overwritten too")
}
