package order

// Query represents filter parameters for listing orders.
type Query struct {
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}
