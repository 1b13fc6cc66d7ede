package request_models

type CreateProjectRequest struct {
	Name   string `json:"name" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
}

type UpdateProjectRequest struct {
	Name  *string            `json:"name"`
	Files *map[string]string `json:"files"`
}

type GenerateRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Prompt    string `json:"prompt" binding:"required"`
}
