package entity

import "time"

// InternalMessage es un mensaje del chat interno del concesionario.
// RecipientID vacío = difusión visible para toda la empresa.
type InternalMessage struct {
	ID          string
	CompanyID   string
	SenderID    string
	RecipientID string // vacío = broadcast
	Content     string
	CreatedAt   time.Time
}
