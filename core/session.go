package core

// Session identifies the authenticated student for the duration of a request.
// Identity is owned by the external identity provider; this object is built
// from verified token claims and passed explicitly to any component that
// needs it.
type Session struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
