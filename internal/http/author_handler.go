package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"doc-catalog/internal/service"
)

// AuthorHandler mantiene dependencias para endpoints de autores.
type AuthorHandler struct {
	logger     *zap.Logger
	authorServ *service.AuthorService
}

func NewAuthorHandler(logger *zap.Logger, authorServ *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{logger: logger, authorServ: authorServ}
}

// List maneja GET /api/authors.
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.authorServ.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list authors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list authors"})
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetByID maneja GET /api/authors/:id.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	author, err := h.authorServ.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		h.logger.Error("get author failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get author"})
		return
	}
	c.JSON(http.StatusOK, author)
}

// GetByEmail maneja GET /api/authors/email/:email.
func (h *AuthorHandler) GetByEmail(c *gin.Context) {
	author, err := h.authorServ.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		h.logger.Error("get author by email failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get author"})
		return
	}
	c.JSON(http.StatusOK, author)
}

// GetByName maneja GET /api/authors/name/:name.
func (h *AuthorHandler) GetByName(c *gin.Context) {
	author, err := h.authorServ.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		h.logger.Error("get author by name failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get author"})
		return
	}
	c.JSON(http.StatusOK, author)
}

// Search maneja GET /api/authors/search.
func (h *AuthorHandler) Search(c *gin.Context) {
	query := c.Query("query")
	authors, err := h.authorServ.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("search authors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search authors"})
		return
	}
	c.JSON(http.StatusOK, authors)
}

type authorRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	Specialization string `json:"specialization"`
}

// Create maneja POST /api/authors.
func (h *AuthorHandler) Create(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create author request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	author, err := h.authorServ.Create(c.Request.Context(), service.AuthorInput{
		Name:           req.Name,
		Email:          req.Email,
		Bio:            req.Bio,
		Specialization: req.Specialization,
	})
	if err != nil {
		h.respondAuthorError(c, err, "create author failed")
		return
	}
	c.JSON(http.StatusCreated, author)
}

// Update maneja PUT /api/authors/:id.
func (h *AuthorHandler) Update(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update author request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	author, err := h.authorServ.Update(c.Request.Context(), c.Param("id"), service.AuthorInput{
		Name:           req.Name,
		Email:          req.Email,
		Bio:            req.Bio,
		Specialization: req.Specialization,
	})
	if err != nil {
		h.respondAuthorError(c, err, "update author failed")
		return
	}
	c.JSON(http.StatusOK, author)
}

// Delete maneja DELETE /api/authors/:id.
func (h *AuthorHandler) Delete(c *gin.Context) {
	if err := h.authorServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		h.logger.Error("delete author failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete author"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthorHandler) respondAuthorError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrDuplicateAuthor):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAuthorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
