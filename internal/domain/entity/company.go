package entity

import "time"

// Company representa un concesionario/tenant del sistema. Todo lo demás
// (usuarios, leads, vehículos, ventas) pertenece a exactamente una Company.
type Company struct {
	ID             string
	Name           string // único a nivel global
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
