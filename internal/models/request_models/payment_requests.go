package request_models

type CreateCheckoutRequest struct {
	PlanID    string `json:"plan_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	OriginURL string `json:"origin_url" binding:"required,url"`
}
