package response_models

type GenerationEventType string

const (
	GenerationEventStatus   GenerationEventType = "status"
	GenerationEventFile     GenerationEventType = "file"
	GenerationEventPreview  GenerationEventType = "preview"
	GenerationEventComplete GenerationEventType = "complete"
	GenerationEventError    GenerationEventType = "error"
)

// GenerationEvent is one frame of the generation stream. File events carry
// Filename and Content; every other type carries Content only. The stream is
// status, file*, preview, then exactly one terminal complete or error.
type GenerationEvent struct {
	Type     GenerationEventType `json:"type"`
	Content  string              `json:"content,omitempty"`
	Filename string              `json:"filename,omitempty"`
}

func (e GenerationEvent) Terminal() bool {
	return e.Type == GenerationEventComplete || e.Type == GenerationEventError
}
