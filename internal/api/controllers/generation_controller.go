package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/internal/services"
	"rodneysbrain/pkg/utils"
)

type GenerationController struct {
	generationService services.GenerationServiceInterface
	projectService    services.ProjectServiceInterface
}

func NewGenerationController(
	generationService services.GenerationServiceInterface,
	projectService services.ProjectServiceInterface,
) *GenerationController {
	return &GenerationController{
		generationService: generationService,
		projectService:    projectService,
	}
}

// Generate godoc
// @Summary Generate an application from a prompt, streamed as SSE
// @Description Emits status, file, preview and a terminal complete/error
// event as text/event-stream frames.
// @Tags Generation
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.GenerateRequest true "Generation payload"
// @Security BearerAuth
// @Router /generate [post]
func (g *GenerationController) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}

	// Ownership check before any streaming starts, so auth failures are
	// plain JSON errors rather than stream events.
	if _, err := g.projectService.GetProject(c.Request.Context(), projectID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	events := g.generationService.StreamGeneration(c.Request.Context(), projectID, userID, req.Prompt)

	ctx := c.Request.Context()
	for {
		select {
		case ev, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
			flusher.Flush()
		case <-ctx.Done():
			// Client went away. The generator keeps running and persists the
			// final project state on its own.
			return
		}
	}
}
