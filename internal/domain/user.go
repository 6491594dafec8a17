package domain

// User is a marketplace account. Identity and credentials live in the
// external auth provider; this record is the profile document keyed by
// the provider's uid. Address and coordinate are captured once at
// registration and never refreshed.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	// FCMToken is the device push token, refreshed on every login.
	// Empty means the user cannot receive push notifications.
	FCMToken  string `json:"-"`
	CreatedOn string `json:"created_on"`
}

func (u *User) Coordinate() (Coordinate, error) {
	return ParseCoordinate(u.Latitude, u.Longitude)
}
