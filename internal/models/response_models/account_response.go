package response_models

type AccountResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	PlanID    *string `json:"plan_id,omitempty"`
	PlanName  *string `json:"plan_name,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

type TokenResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}
