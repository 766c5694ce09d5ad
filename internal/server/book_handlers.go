package server

import (
	"strings"

	"pustaka/internal/models"
	"pustaka/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// bookRules builds the ordered validation rules shared by create and update.
// The title uniqueness check deliberately does not exclude the record being
// updated: updating a book while keeping its own title fails, matching the
// behavior of the system this API replaces.
func (s *Server) bookRules(c *fiber.Ctx, fields models.BookFields, lookupErr *error) []validation.Rule {
	ctx := c.Context()
	return []validation.Rule{
		validation.Required("title", strings.TrimSpace(fields.Title), "The title field is required."),
		{
			Field:   "title",
			Message: "The title has already been taken.",
			Check: func() bool {
				taken, err := s.bookRepo.TitleTaken(ctx, fields.Title)
				if err != nil {
					*lookupErr = err
					return false
				}
				return !taken
			},
		},
		validation.Required("author", strings.TrimSpace(fields.Author), "The author field is required."),
		validation.MaxLen("author", fields.Author, 100, "The author may not be greater than 100 characters."),
	}
}

// ListBooks handles GET /api/book. Soft-deleted books are excluded; results
// come back in insertion order.
func (s *Server) ListBooks(c *fiber.Ctx) error {
	books, err := s.bookRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(books)
}

// GetBook handles GET /api/book/:id.
func (s *Server) GetBook(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(book)
}

// CreateBook handles POST /api/book. The created record carries a reference
// to the authenticated user.
func (s *Server) CreateBook(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var fields models.BookFields
	if err := c.BodyParser(&fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var lookupErr error
	if err := validation.First(s.bookRules(c, fields, &lookupErr)); err != nil {
		if lookupErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidDataError(lookupErr))
		}
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	book := &models.Book{CreatedByID: &userID}
	book.Fill(fields)

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(book)
}

// UpdateBook handles PUT /api/book/:id. All assignable fields are overwritten
// with the submitted values; the response carries a message, not the record.
func (s *Server) UpdateBook(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	var fields models.BookFields
	if parseErr := c.BodyParser(&fields); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var lookupErr error
	if valErr := validation.First(s.bookRules(c, fields, &lookupErr)); valErr != nil {
		if lookupErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidDataError(lookupErr))
		}
		return models.RespondWithError(c, fiber.StatusBadRequest, valErr)
	}

	book.Fill(fields)
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Book updated successfully",
	})
}

// DeleteBook handles DELETE /api/book/:id. The book is soft deleted: the row
// stays in storage with its deletion timestamp set and disappears from reads.
func (s *Server) DeleteBook(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.bookRepo.SoftDelete(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Book deleted successfully",
	})
}
