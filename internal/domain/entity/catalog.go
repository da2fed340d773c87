package entity

// CarBrand es una marca del catálogo de vehículos (compartido entre empresas).
type CarBrand struct {
	ID      string
	Name    string // único
	LogoURL string
}

// CarModel es un modelo perteneciente a una marca.
type CarModel struct {
	ID      string
	BrandID string
	Name    string
}
