package domain

const AdminRole = "admin"

// Actor identifies the authenticated user an operation runs on behalf of.
// It is passed explicitly into every service call that records a user id.
type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == AdminRole }
