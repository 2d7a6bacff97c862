package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/shared/outcome"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/internal/shared/validation"
)

type AuthorHandler struct {
	repo author.Repository
}

func NewAuthorHandler(repo author.Repository) *AuthorHandler {
	return &AuthorHandler{
		repo: repo,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	const location = "Authors - List"

	authors, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		outcome.Internal(c, location, 0, err)
		return
	}

	response.OK(c, model.ToDTOs(authors))
}

// ════════════════════════════════════════════════════════════════
// READ: Get - GET /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Get(c *gin.Context) {
	const location = "Authors - Get"

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		outcome.BadRequest(c, location, c.Param("id"), "Invalid author id")
		return
	}

	a, found, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		outcome.Internal(c, location, id, err)
		return
	}
	if !found {
		outcome.NotFound(c, location, id, "Author not found")
		return
	}

	response.OK(c, a.ToDTO())
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	const location = "Authors - Create"

	var req model.CreateAuthorRequest
	if !utils.BindJSONBody(c, &req) {
		outcome.BadRequest(c, location, "", "Empty or malformed request body")
		return
	}

	if err := req.Validate(); err != nil {
		outcome.BadInput(c, location, 0, validation.FromError(err))
		return
	}

	a := req.ToEntity()
	ok, err := h.repo.Create(c.Request.Context(), a)
	if err != nil || !ok {
		outcome.Internal(c, location, 0, outcome.CommitError(err))
		return
	}

	log.Info().Str("location", location).Int("id", a.ID).Msg("author created")
	response.Created(c, a.ToDTO())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	const location = "Authors - Update"
	ctx := c.Request.Context()

	// 1. shape: path id, body, matching ids
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		outcome.BadRequest(c, location, c.Param("id"), "Invalid author id")
		return
	}
	var req model.UpdateAuthorRequest
	if !utils.BindJSONBody(c, &req) {
		outcome.BadRequest(c, location, c.Param("id"), "Empty or malformed request body")
		return
	}
	if req.ID != id {
		outcome.BadRequest(c, location, c.Param("id"), "Body id does not match path id")
		return
	}

	// 2. existence
	exists, err := h.repo.Exists(ctx, id)
	if err != nil {
		outcome.Internal(c, location, id, err)
		return
	}
	if !exists {
		outcome.NotFound(c, location, id, "Author not found")
		return
	}

	// 3. fields
	if err := req.Validate(); err != nil {
		outcome.BadInput(c, location, id, validation.FromError(err))
		return
	}

	// 4. mutation
	ok, err = h.repo.Update(ctx, req.ToEntity())
	if err != nil || !ok {
		outcome.Internal(c, location, id, outcome.CommitError(err))
		return
	}

	log.Info().Str("location", location).Int("id", id).Msg("author updated")
	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	const location = "Authors - Delete"
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		outcome.BadRequest(c, location, c.Param("id"), "Invalid author id")
		return
	}

	exists, err := h.repo.Exists(ctx, id)
	if err != nil {
		outcome.Internal(c, location, id, err)
		return
	}
	if !exists {
		outcome.NotFound(c, location, id, "Author not found")
		return
	}

	// Delete takes the whole entity; it may have vanished since Exists
	a, found, err := h.repo.FindByID(ctx, id)
	if err != nil || !found {
		outcome.Internal(c, location, id, outcome.VanishedError(err))
		return
	}

	ok, err = h.repo.Delete(ctx, a)
	if err != nil || !ok {
		outcome.Internal(c, location, id, outcome.CommitError(err))
		return
	}

	log.Info().Str("location", location).Int("id", id).Msg("author deleted")
	response.NoContent(c)
}
