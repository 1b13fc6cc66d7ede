package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"rodneysbrain/internal/models/response_models"
	"rodneysbrain/internal/repositories"
	"rodneysbrain/pkg/utils"
)

const appBuilderSystemPrompt = `You are Famous AI, an expert web application generator. Generate clean, modern, and functional web applications.

When given a prompt, create a complete single-page web application with:
1. HTML structure with proper semantic elements
2. CSS styling using modern CSS (flexbox, grid, custom properties)
3. JavaScript for interactivity

Output your response as a JSON object with this exact structure:
{
  "files": {
    "index.html": "<!DOCTYPE html>...",
    "styles.css": "...",
    "script.js": "..."
  },
  "preview_html": "<!-- Complete standalone HTML with embedded CSS and JS that can be rendered in an iframe -->"
}

IMPORTANT: The preview_html must be a complete, self-contained HTML document with all CSS in <style> tags and all JS in <script> tags. It should work standalone when rendered in an iframe.

Make the design modern, visually appealing with:
- Clean typography
- Thoughtful color scheme
- Smooth animations and transitions
- Responsive layout
- Professional appearance`

type GenerationServiceInterface interface {
	// StreamGeneration runs one generation attempt and returns its event
	// stream. The channel carries status, file*, preview and exactly one
	// terminal complete or error event, then closes. The ctx argument scopes
	// only event delivery: when the consumer goes away, emission stops but
	// the provider call and the final persistence still run to completion.
	StreamGeneration(ctx context.Context, projectID, ownerID uuid.UUID, prompt string) <-chan response_models.GenerationEvent
}

type GenerationService struct {
	projectRepo repositories.ProjectRepository
	aiClient    utils.GenerationClientInterface

	// Pacing between file events so a streaming transport flushes them
	// incrementally. Cosmetic, zero in tests.
	fileEventDelay time.Duration
}

func NewGenerationService(projectRepo repositories.ProjectRepository, aiClient utils.GenerationClientInterface) GenerationServiceInterface {
	return &GenerationService{
		projectRepo:    projectRepo,
		aiClient:       aiClient,
		fileEventDelay: 50 * time.Millisecond,
	}
}

func (g *GenerationService) StreamGeneration(ctx context.Context, projectID, ownerID uuid.UUID, prompt string) <-chan response_models.GenerationEvent {
	events := make(chan response_models.GenerationEvent, 16)

	// Detach the work from the stream: a dropped client must never leave the
	// project stuck at "generating".
	workCtx := context.WithoutCancel(ctx)
	go g.run(workCtx, ctx, projectID, ownerID, prompt, events)

	return events
}

func (g *GenerationService) run(workCtx, streamCtx context.Context, projectID, ownerID uuid.UUID, prompt string, events chan<- response_models.GenerationEvent) {
	defer close(events)

	emit := func(ev response_models.GenerationEvent) {
		select {
		case events <- ev:
		case <-streamCtx.Done():
			// Consumer is gone; drop the event and keep working.
		}
	}

	if err := g.projectRepo.MarkGenerating(workCtx, projectID, ownerID); err != nil {
		log.Printf("generation: failed to mark project %s generating: %v", projectID, err)
		emit(errorEvent("Failed to start generation"))
		return
	}

	emit(response_models.GenerationEvent{
		Type:    response_models.GenerationEventStatus,
		Content: "Starting code generation...",
	})

	emit(response_models.GenerationEvent{
		Type:    response_models.GenerationEventStatus,
		Content: "Generating application code...",
	})

	// Single attempt against the provider; failures surface in the stream,
	// never as a transport fault.
	reply, err := g.aiClient.GenerateApp(workCtx, appBuilderSystemPrompt, "Create a web application for: "+prompt)
	if err != nil {
		log.Printf("generation: provider error for project %s: %v", projectID, err)
		g.failProject(workCtx, projectID, ownerID)
		emit(errorEvent(err.Error()))
		return
	}

	bundle := ParseGenerationReply(reply)
	if bundle.Fallback {
		log.Printf("generation: reply for project %s had no structured payload, using raw fallback", projectID)
	}

	for _, path := range bundle.Paths() {
		emit(response_models.GenerationEvent{
			Type:     response_models.GenerationEventFile,
			Filename: path,
			Content:  bundle.Files[path],
		})
		if g.fileEventDelay > 0 {
			time.Sleep(g.fileEventDelay)
		}
	}

	if err := g.projectRepo.SaveGenerationResult(workCtx, projectID, ownerID, bundle.Files, bundle.PreviewHTML); err != nil {
		log.Printf("generation: failed to persist result for project %s: %v", projectID, err)
		g.failProject(workCtx, projectID, ownerID)
		emit(errorEvent("Failed to save generated application"))
		return
	}

	emit(response_models.GenerationEvent{
		Type:    response_models.GenerationEventPreview,
		Content: bundle.PreviewHTML,
	})
	emit(response_models.GenerationEvent{
		Type:    response_models.GenerationEventComplete,
		Content: "Code generation complete!",
	})
}

// failProject is best effort: if the error status cannot be recorded there
// is nothing left to escalate to, so it is only logged.
func (g *GenerationService) failProject(ctx context.Context, projectID, ownerID uuid.UUID) {
	if err := g.projectRepo.MarkGenerationError(ctx, projectID, ownerID); err != nil {
		log.Printf("generation: failed to mark project %s as errored: %v", projectID, err)
	}
}

func errorEvent(message string) response_models.GenerationEvent {
	return response_models.GenerationEvent{
		Type:    response_models.GenerationEventError,
		Content: message,
	}
}
