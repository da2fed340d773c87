package entity

import "time"

// presenceWindow define cuánto tiempo después del último movimiento un
// usuario sigue contando como "en línea".
const presenceWindow = 5 * time.Minute

// User representa un usuario del sistema. CompanyID vacío identifica al
// super admin global sin empresa; el resto de usuarios pertenece a una.
type User struct {
	ID           string
	Email        string // único a nivel global
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	RoleID       string
	RoleName     string // hidratado con JOIN a roles; ver authz.ParseKind
	CompanyID    string // vacío = global
	// CommissionPercentage porcentaje entero 0-100; solo relevante para asesores.
	CommissionPercentage int64
	BaseSalary           *int64 // nil = sin sueldo base registrado
	PaymentDates         string // texto libre, ej. "15 y 30"
	LastActive           *time.Time
	CreatedAt            time.Time
}

// IsOnline indica si el usuario estuvo activo dentro de la ventana de presencia.
// Se calcula en lectura, nunca se persiste.
func (u *User) IsOnline(now time.Time) bool {
	return u.LastActive != nil && now.Sub(*u.LastActive) < presenceWindow
}
