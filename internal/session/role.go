package session

import "fmt"

// Role is the backend's numeric "cargo" code. The values are assigned by the
// backend and must match it exactly.
type Role int

const (
	RoleNone           Role = 0
	RoleWarehouseStaff Role = 1
	RoleSupervisor     Role = 2
	RoleAuditor        Role = 3
	RoleAdministrator  Role = 4
)

// LoginPath is the entry point every denied navigation lands on.
const LoginPath = "/login"

// Known returns true for the codes the backend currently assigns.
func (r Role) Known() bool {
	return r >= RoleWarehouseStaff && r <= RoleAdministrator
}

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleWarehouseStaff:
		return "bodeguero"
	case RoleSupervisor:
		return "jefe_bodega"
	case RoleAuditor:
		return "auditor"
	case RoleAdministrator:
		return "administrador"
	default:
		return fmt.Sprintf("cargo(%d)", int(r))
	}
}

// HomePath returns the landing path after a successful login.
func (r Role) HomePath() string {
	switch r {
	case RoleWarehouseStaff:
		return "/bodeguero"
	case RoleSupervisor:
		return "/jefebodega"
	case RoleAuditor:
		return "/auditor"
	case RoleAdministrator:
		return "/administrador"
	default:
		return LoginPath
	}
}
