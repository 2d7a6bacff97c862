package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/author"
	authorModel "bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/domains/book"
	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/shared/outcome"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/internal/shared/validation"
)

var unknownAuthor = []validation.Violation{{Field: "author_id", Message: "author does not exist"}}

type BookHandler struct {
	books   book.Repository
	authors author.Repository
}

func NewBookHandler(books book.Repository, authors author.Repository) *BookHandler {
	return &BookHandler{
		books:   books,
		authors: authors,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /api/v1/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) List(c *gin.Context) {
	const location = "Books - List"
	ctx := c.Request.Context()

	books, err := h.books.FindAll(ctx)
	if err != nil {
		outcome.Internal(c, location, 0, err)
		return
	}

	// one query for all authors instead of one per book
	authors, err := h.authors.FindAll(ctx)
	if err != nil {
		outcome.Internal(c, location, 0, err)
		return
	}
	byID := make(map[int]*authorModel.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	out := make([]*model.BookDTO, 0, len(books))
	for _, b := range books {
		var a *authorModel.Author
		if b.AuthorID != nil {
			a = byID[*b.AuthorID]
		}
		out = append(out, b.ToDTO(a))
	}

	response.OK(c, out)
}

// ════════════════════════════════════════════════════════════════
// READ: Get - GET /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Get(c *gin.Context) {
	const location = "Books - Get"
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		outcome.BadRequest(c, location, c.Param("id"), "Invalid book id")
		return
	}

	b, found, err := h.books.FindByID(ctx, id)
	if err != nil {
		outcome.Internal(c, location, id, err)
		return
	}
	if !found {
		outcome.NotFound(c, location, id, "Book not found")
		return
	}

	var a *authorModel.Author
	if b.AuthorID != nil {
		a, _, err = h.authors.FindByID(ctx, *b.AuthorID)
		if err != nil {
			outcome.Internal(c, location, id, err)
			return
		}
	}

	response.OK(c, b.ToDTO(a))
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Create(c *gin.Context) {
	const location = "Books - Create"
	ctx := c.Request.Context()

	var req model.CreateBookRequest
	if !utils.BindJSONBody(c, &req) {
		outcome.BadRequest(c, location, "", "Empty or malformed request body")
		return
	}

	if err := req.Validate(); err != nil {
		outcome.BadInput(c, location, 0, validation.FromError(err))
		return
	}

	if !h.authorExists(ctx, c, location, 0, *req.AuthorID) {
		return
	}

	b := req.ToEntity()
	ok, err := h.books.Create(ctx, b)
	if err != nil || !ok {
		outcome.Internal(c, location, 0, outcome.CommitError(err))
		return
	}

	log.Info().Str("location", location).Int("id", b.ID).Msg("book created")
	response.Created(c, b.ToDTO(nil))
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Update(c *gin.Context) {
	const location = "Books - Update"
	ctx := c.Request.Context()

	// 1. shape: path id, body, matching ids
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		outcome.BadRequest(c, location, c.Param("id"), "Invalid book id")
		return
	}
	var req model.UpdateBookRequest
	if !utils.BindJSONBody(c, &req) {
		outcome.BadRequest(c, location, c.Param("id"), "Empty or malformed request body")
		return
	}
	if req.ID != id {
		outcome.BadRequest(c, location, c.Param("id"), "Body id does not match path id")
		return
	}

	// 2. existence
	exists, err := h.books.Exists(ctx, id)
	if err != nil {
		outcome.Internal(c, location, id, err)
		return
	}
	if !exists {
		outcome.NotFound(c, location, id, "Book not found")
		return
	}

	// 3. fields, then the referenced author
	if err := req.Validate(); err != nil {
		outcome.BadInput(c, location, id, validation.FromError(err))
		return
	}
	if !h.authorExists(ctx, c, location, id, *req.AuthorID) {
		return
	}

	// 4. mutation
	ok, err = h.books.Update(ctx, req.ToEntity())
	if err != nil || !ok {
		outcome.Internal(c, location, id, outcome.CommitError(err))
		return
	}

	log.Info().Str("location", location).Int("id", id).Msg("book updated")
	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Delete(c *gin.Context) {
	const location = "Books - Delete"
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		outcome.BadRequest(c, location, c.Param("id"), "Invalid book id")
		return
	}

	exists, err := h.books.Exists(ctx, id)
	if err != nil {
		outcome.Internal(c, location, id, err)
		return
	}
	if !exists {
		outcome.NotFound(c, location, id, "Book not found")
		return
	}

	b, found, err := h.books.FindByID(ctx, id)
	if err != nil || !found {
		outcome.Internal(c, location, id, outcome.VanishedError(err))
		return
	}

	ok, err = h.books.Delete(ctx, b)
	if err != nil || !ok {
		outcome.Internal(c, location, id, outcome.CommitError(err))
		return
	}

	log.Info().Str("location", location).Int("id", id).Msg("book deleted")
	response.NoContent(c)
}

// authorExists writes the failure response itself and reports whether to continue
func (h *BookHandler) authorExists(ctx context.Context, c *gin.Context, location string, id, authorID int) bool {
	exists, err := h.authors.Exists(ctx, authorID)
	if err != nil {
		outcome.Internal(c, location, id, err)
		return false
	}
	if !exists {
		outcome.BadInput(c, location, id, unknownAuthor)
		return false
	}
	return true
}
