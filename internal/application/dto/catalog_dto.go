package dto

// BrandResponse una marca del catálogo compartido.
type BrandResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// ModelResponse un modelo de una marca.
type ModelResponse struct {
	ID      string `json:"id"`
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
}
