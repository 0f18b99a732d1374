package user

// UserData is the singleton session record. IsLoggedIn is an explicit flag
// rather than "presence implies logged in": a record may linger for a user
// who has logged out through flows that keep their profile around.
type UserData struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// DisplayName returns the name shown in the header: the first name when set,
// otherwise the last name.
func (u UserData) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}

	return u.LastName
}
