package domain

// Identity describes the signed-in user bound to a session.
// A nil *Identity means the request is anonymous.
type Identity struct {
	UserID   int64
	Username string
}
