package address

// Address is a saved shipping address. At most one address in the book has
// IsDefault set.
type Address struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
	CreatedAt  int64  `json:"createdAt"`
}

// Draft carries the fields of an address before it is stored.
type Draft struct {
	Name       string `json:"name"       validate:"required"`
	Street     string `json:"street"     validate:"required"`
	City       string `json:"city"       validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	IsDefault  bool   `json:"isDefault"`
}

// SameFields reports whether the stored address matches the draft field for
// field. Used to deduplicate on insert.
func (a Address) SameFields(d Draft) bool {
	return a.Name == d.Name &&
		a.Street == d.Street &&
		a.City == d.City &&
		a.PostalCode == d.PostalCode
}
