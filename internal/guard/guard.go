// Package guard decides whether the current session may reach a view.
package guard

import (
	"slices"

	"github.com/wolfeidau/inventario/internal/session"
)

// Reader exposes the session to evaluate against.
type Reader interface {
	Current() session.Session
}

// Guard is a named predicate over the session role.
type Guard struct {
	name  string
	allow func(session.Role) bool
}

var (
	// Authenticated allows any role other than RoleNone, recognised or not.
	Authenticated = RequireAuthenticated()

	WarehouseStaff = RequireRole(session.RoleWarehouseStaff)
	Supervisor     = RequireRole(session.RoleSupervisor)
	Administrator  = RequireRole(session.RoleAdministrator)
)

// RequireAuthenticated builds a guard accepting every role except RoleNone.
func RequireAuthenticated() Guard {
	return Guard{
		name: "authenticated",
		allow: func(r session.Role) bool {
			return r != session.RoleNone
		},
	}
}

// RequireRole builds a guard accepting exactly the given roles.
func RequireRole(roles ...session.Role) Guard {
	accepted := slices.Clone(roles)

	name := ""
	for i, r := range accepted {
		if i > 0 {
			name += "|"
		}
		name += r.String()
	}

	return Guard{
		name: name,
		allow: func(r session.Role) bool {
			return r != session.RoleNone && slices.Contains(accepted, r)
		},
	}
}

func (g Guard) String() string {
	return g.name
}

// Allows reports whether role passes the guard. The zero Guard allows nothing.
func (g Guard) Allows(role session.Role) bool {
	if g.allow == nil {
		return false
	}
	return g.allow(role)
}

// Evaluate reads the current session and either passes view through or
// redirects to the login path. Nothing is cached between calls.
func Evaluate[V any](g Guard, r Reader, view V) Decision[V] {
	if g.Allows(r.Current().Role) {
		return Allow(view)
	}
	return Deny[V](session.LoginPath)
}
