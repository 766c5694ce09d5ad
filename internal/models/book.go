package models

import (
	"time"

	"gorm.io/gorm"
)

// Book represents a catalog entry. Titles are unique among live rows only:
// the partial index ignores soft-deleted books, so a deleted title can be
// registered again.
type Book struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"size:255;not null;uniqueIndex:idx_books_title_live,where:deleted_at IS NULL" json:"title"`
	Author          string         `gorm:"size:100;not null" json:"author"`
	Publisher       string         `gorm:"size:255" json:"publisher"`
	PublicationYear string         `gorm:"size:255" json:"publication_year"`
	Cover           string         `gorm:"size:255" json:"cover"`
	Description     string         `gorm:"type:text" json:"description"`
	Price           float64        `json:"price"`
	CreatedByID     *uint          `gorm:"column:created_by" json:"created_by"`
	CreatedBy       *User          `gorm:"foreignKey:CreatedByID" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// TableName specifies the table name for GORM.
func (Book) TableName() string {
	return "books"
}

// BookFields is the allow-listed set of attributes a client may assign to a
// book. Everything outside this struct (id, timestamps, created_by) is
// server-managed.
type BookFields struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Publisher       string  `json:"publisher"`
	PublicationYear string  `json:"publication_year"`
	Cover           string  `json:"cover"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
}

// Fill overwrites the book's assignable attributes with the given fields.
func (b *Book) Fill(f BookFields) {
	b.Title = f.Title
	b.Author = f.Author
	b.Publisher = f.Publisher
	b.PublicationYear = f.PublicationYear
	b.Cover = f.Cover
	b.Description = f.Description
	b.Price = f.Price
}
