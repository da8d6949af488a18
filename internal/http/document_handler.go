package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"doc-catalog/internal/domain"
	"doc-catalog/internal/service"
)

// DocumentHandler mantiene dependencias para endpoints de documentos.
type DocumentHandler struct {
	logger  *zap.Logger
	docServ *service.DocumentService
}

func NewDocumentHandler(logger *zap.Logger, docServ *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{logger: logger, docServ: docServ}
}

// List maneja GET /api/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docServ.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list documents failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list documents"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GetByID maneja GET /api/documents/:id.
func (h *DocumentHandler) GetByID(c *gin.Context) {
	doc, err := h.docServ.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		h.logger.Error("get document failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get document"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Search maneja GET /api/documents/search.
func (h *DocumentHandler) Search(c *gin.Context) {
	query := c.Query("query")
	docs, err := h.docServ.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("search documents failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search documents"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

type documentRequest struct {
	Title           string            `json:"title"`
	Summary         string            `json:"summary"`
	Keywords        []string          `json:"keywords"`
	FileURL         string            `json:"fileUrl"`
	FileType        string            `json:"fileType"`
	Theme           string            `json:"theme"`
	PublicationDate *time.Time        `json:"publicationDate"`
	Author          *domain.AuthorRef `json:"author"`
}

func (r documentRequest) toInput() service.DocumentInput {
	return service.DocumentInput{
		Title:           r.Title,
		Summary:         r.Summary,
		Keywords:        r.Keywords,
		FileURL:         r.FileURL,
		FileType:        r.FileType,
		Theme:           r.Theme,
		PublicationDate: r.PublicationDate,
		Author:          r.Author,
	}
}

// Create maneja POST /api/documents.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create document request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	doc, err := h.docServ.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.respondDocumentError(c, err, "create document failed")
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// Update maneja PUT /api/documents/:id.
func (h *DocumentHandler) Update(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update document request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	doc, err := h.docServ.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.respondDocumentError(c, err, "update document failed")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete maneja DELETE /api/documents/:id.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.docServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		h.logger.Error("delete document failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete document"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DocumentHandler) respondDocumentError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrDuplicateDocument), errors.Is(err, service.ErrDuplicateAuthor):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
	case errors.Is(err, service.ErrAuthorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
