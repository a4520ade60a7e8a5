package api

import "github.com/wolfeidau/inventario/internal/session"

// LoginRequest is sent to auth/login/. The backend expects "password".
type LoginRequest struct {
	Rut      string `json:"rut"`
	Password string `json:"password"`
}

// LoginResponse is the success payload of auth/login/.
// Cargo is null for users without an assigned role.
type LoginResponse struct {
	Token    string `json:"token"`
	Cargo    *int   `json:"cargo"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Message  string `json:"message,omitempty"`
}

// Credentials converts the payload for the session store.
func (l *LoginResponse) Credentials() session.Credentials {
	role := session.RoleNone
	if l.Cargo != nil {
		role = session.Role(*l.Cargo)
	}
	return session.Credentials{
		Token:     l.Token,
		Role:      role,
		FirstName: l.Nombre,
		LastName:  l.Apellido,
	}
}

// Result is the generic acknowledgement returned by write endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Incoming registers stock received from a supplier (ingreso).
type Incoming struct {
	ProveedorID int            `json:"proveedor_id" yaml:"proveedor_id"`
	Descripcion string         `json:"descripcion" yaml:"descripcion"`
	Productos   []IncomingItem `json:"productos" yaml:"productos"`
}

type IncomingItem struct {
	ProductoID       int    `json:"producto_id" yaml:"producto_id"`
	CantidadLotes    int    `json:"cantidad_lotes" yaml:"cantidad_lotes"`
	CodigoLote       string `json:"codigo_lote" yaml:"codigo_lote"`
	FechaVencimiento string `json:"fecha_vencimiento" yaml:"fecha_vencimiento"`
}

// Outgoing registers stock dispatched to a client (salida).
type Outgoing struct {
	ClienteID   int            `json:"cliente_id" yaml:"cliente_id"`
	Descripcion string         `json:"descripcion" yaml:"descripcion"`
	Productos   []OutgoingItem `json:"productos" yaml:"productos"`
}

type OutgoingItem struct {
	LoteID        int `json:"lote_id" yaml:"lote_id"`
	CantidadLotes int `json:"cantidad_lotes" yaml:"cantidad_lotes"`
}

// Shrinkage records lost or damaged stock (merma).
type Shrinkage struct {
	CategoriaMermaID int             `json:"categoria_merma_id" yaml:"categoria_merma_id"`
	Observaciones    string          `json:"observaciones" yaml:"observaciones"`
	Productos        []ShrinkageItem `json:"productos" yaml:"productos"`
}

type ShrinkageItem struct {
	LoteID        int     `json:"lote_id" yaml:"lote_id"`
	CantidadMerma float64 `json:"cantidad_merma" yaml:"cantidad_merma"`
}

// PendingShrinkage is a merma awaiting supervisor approval.
type PendingShrinkage struct {
	ID                    int               `json:"id"`
	Fecha                 string            `json:"fecha"`
	Hora                  string            `json:"hora"`
	CategoriaMerma        string            `json:"categoria_merma"`
	Estado                string            `json:"estado"`
	ObservacionesRegistro string            `json:"observaciones_registro"`
	UsuarioRegistro       Person            `json:"usuario_registro"`
	DetallesMerma         []ShrinkageDetail `json:"detalles_merma"`
	ValorTotalMerma       float64           `json:"valor_total_merma"`
}

type Person struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

type ShrinkageDetail struct {
	LoteCodigo     string  `json:"lote_codigo"`
	ProductoNombre string  `json:"producto_nombre"`
	CantidadMerma  float64 `json:"cantidad_merma"`
	ValorMerma     float64 `json:"valor_merma"`
}

// NewUser registers a user. Cargo is the role code the user will log in with.
type NewUser struct {
	Nombre          string `json:"nombre" yaml:"nombre"`
	Apellido        string `json:"apellido" yaml:"apellido"`
	FechaNacimiento string `json:"fecha_nacimiento" yaml:"fecha_nacimiento"`
	Rut             string `json:"rut" yaml:"rut"`
	Cargo           int    `json:"cargo" yaml:"cargo"`
	Email           string `json:"email" yaml:"email"`
}

// Payload is a free-form body for the administrator catalogue endpoints.
type Payload map[string]any
