package response_models

type PlanResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Amount   float64  `json:"amount"`
	Currency string   `json:"currency"`
	Interval string   `json:"interval"`
	Features []string `json:"features,omitempty"`
}

type CreateCheckoutResponse struct {
	SessionID   string  `json:"session_id"`
	CheckoutURL string  `json:"checkout_url"`
	PlanID      string  `json:"plan_id"`
	PlanName    string  `json:"plan_name"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

type CheckoutStatusResponse struct {
	SessionID     string  `json:"session_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	PlanID        string  `json:"plan_id"`
	PlanName      string  `json:"plan_name"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Email         string  `json:"email"`
	UserCreated   bool    `json:"user_created"`
	ExistingUser  bool    `json:"existing_user"`
	UserID        string  `json:"user_id,omitempty"`
	// Present exactly once, on the first status response after provisioning
	// created a new account.
	TempPassword string `json:"temp_password,omitempty"`
}
