package cart

// Item is one line of the cart. The cart holds at most one line per product;
// adding an already-present product increments its quantity.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	AddedAt   string `json:"addedAt"`
}
