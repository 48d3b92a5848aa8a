package domain

// Session is the authenticated identity bound to the current process.
// Token and User are set together or not at all; a partially populated
// session never exists.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
