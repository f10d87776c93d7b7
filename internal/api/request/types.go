package request

// SetupRequest is the request body for creating the participants
type SetupRequest struct {
	Participants  []string `json:"participants"`
	InitialBudget int      `json:"initial_budget,omitempty"`
}

// AcquireRequest is the request body for buying a player
type AcquireRequest struct {
	Participant string `json:"participant"`
	Price       int    `json:"price"`
}

// RevisePriceRequest is the request body for correcting a paid price
type RevisePriceRequest struct {
	Participant string `json:"participant"`
	Price       int    `json:"price"`
}

// ReleaseRequest is the request body for returning a player to the pool
type ReleaseRequest struct {
	Participant string `json:"participant"`
}
