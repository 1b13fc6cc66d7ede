package response_models

type ProjectResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	Prompt      string            `json:"prompt"`
	Status      string            `json:"status"`
	Files       map[string]string `json:"files"`
	PreviewHTML string            `json:"preview_html"`
	CreatedAt   int64             `json:"created_at"`
	UpdatedAt   int64             `json:"updated_at"`
}

type PreviewResponse struct {
	PreviewHTML string `json:"preview_html"`
}
