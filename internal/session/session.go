package session

import "strings"

// Session is the authenticated identity held by the running client.
// The JSON layout is the persisted record shared with the backend login payload.
type Session struct {
	Token     string `json:"token"`
	Role      Role   `json:"cargo"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
}

// Credentials is what the authentication collaborator hands to Login.
type Credentials struct {
	Token     string
	Role      Role
	FirstName string
	LastName  string
}

// Empty returns the unauthenticated session.
func Empty() Session {
	return Session{}
}

// Authenticated returns true if a token is held.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Valid reports whether the session satisfies the token/role invariant:
// RoleNone if and only if the token is empty.
func (s Session) Valid() bool {
	if s.Role < RoleNone {
		return false
	}
	return (s.Token == "") == (s.Role == RoleNone)
}

// DisplayName joins first and last name for display.
func (s Session) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func fromCredentials(c Credentials) Session {
	return Session{
		Token:     c.Token,
		Role:      c.Role,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}
