package services

import (
	"rodneysbrain/internal/models/response_models"
)

// SubscriptionPlan is one entry of the server-held pricing table. Amounts are
// in minor units and never come from a client.
type SubscriptionPlan struct {
	ID          string
	Name        string
	AmountMinor int64
	Currency    string
	Interval    string
	Features    []string
}

func (p SubscriptionPlan) Amount() float64 {
	return float64(p.AmountMinor) / 100
}

// PlanCatalog is read-only process-wide state, built once at startup and
// never mutated by requests.
type PlanCatalog struct {
	plans map[string]SubscriptionPlan
	order []string
}

func NewPlanCatalog(plans []SubscriptionPlan) *PlanCatalog {
	c := &PlanCatalog{plans: make(map[string]SubscriptionPlan, len(plans))}
	for _, p := range plans {
		c.plans[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

func DefaultPlanCatalog() *PlanCatalog {
	return NewPlanCatalog([]SubscriptionPlan{
		{
			ID:          "starter",
			Name:        "Starter",
			AmountMinor: 1700,
			Currency:    "usd",
			Interval:    "month",
			Features:    []string{"5 projects", "Community support"},
		},
		{
			ID:          "pro",
			Name:        "Pro",
			AmountMinor: 4700,
			Currency:    "usd",
			Interval:    "month",
			Features:    []string{"Unlimited projects", "Priority generation", "Email support"},
		},
		{
			ID:          "agency",
			Name:        "Agency",
			AmountMinor: 9700,
			Currency:    "usd",
			Interval:    "month",
			Features:    []string{"Unlimited projects", "Team seats", "White-label previews"},
		},
	})
}

func (c *PlanCatalog) Get(id string) (SubscriptionPlan, bool) {
	p, ok := c.plans[id]
	return p, ok
}

func (c *PlanCatalog) List() []response_models.PlanResponse {
	out := make([]response_models.PlanResponse, 0, len(c.order))
	for _, id := range c.order {
		p := c.plans[id]
		out = append(out, response_models.PlanResponse{
			ID:       p.ID,
			Name:     p.Name,
			Amount:   p.Amount(),
			Currency: p.Currency,
			Interval: p.Interval,
			Features: p.Features,
		})
	}
	return out
}
