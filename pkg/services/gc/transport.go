package gc

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NewHandler returns a new gc.Handler
func NewHandler(service Service) Handler {
	return Handler{
		service: service,
	}
}

type Handler struct {
	service Service
}

// GarbageCollect runs a single pass over all projects; it responds with Done even if some projects failed, the failures are in the body
func (h *Handler) GarbageCollect(c *gin.Context) {

	results, err := h.service.GarbageCollect(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed garbage collecting")
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Done", "projects": results})
}
