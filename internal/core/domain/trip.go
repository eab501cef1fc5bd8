package domain

import "time"

// Trip is the owned resource the authorization policy is exercised against.
// The wider trip-planning feature set lives outside this service; only the
// fields needed for ownership scoping and a useful summary are modelled.
type Trip struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AsResource adapts a trip to the policy layer's view of it.
func (t *Trip) AsResource() *Resource {
	return &Resource{ID: t.ID, OwnerID: t.OwnerID, Entity: t}
}
