package domain

type User struct {
	ID       string
	Username string
	Password string
}

// Session is a projection of a registered User. At most one session
// is persisted at a time.
type Session struct {
	UserID   string
	Username string
}
