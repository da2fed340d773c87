package entity

// Role es una fila del catálogo de roles. El nombre es lo que viaja en el
// token JWT y lo que authz.ParseKind interpreta; Label es solo presentación.
type Role struct {
	ID    string
	Name  string // ej. "super_admin"
	Label string // ej. "Super Admin Global"
}
