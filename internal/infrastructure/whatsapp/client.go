package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const graphBaseURL = "https://graph.facebook.com/v17.0/%s/messages"

// Client adaptador saliente hacia la Cloud API de WhatsApp.
// Usa únicamente net/http: la API es un POST JSON simple.
type Client struct {
	apiKey        string
	phoneNumberID string
	httpClient    *http.Client
}

// NewClient construye el adaptador. Si apiKey o phoneNumberID están vacíos,
// los envíos fallan con un error descriptivo en lugar de llegar a la red.
func NewClient(apiKey, phoneNumberID string) *Client {
	return &Client{
		apiKey:        apiKey,
		phoneNumberID: phoneNumberID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type outboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             outboundText `json:"text"`
}

type outboundText struct {
	Body string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText envía un mensaje de texto al número indicado y devuelve el ID
// asignado por el canal. Un error aquí nunca debe impedir persistir el
// mensaje: el caller lo guarda con estado failed.
func (c *Client) SendText(ctx context.Context, toPhone, text string) (string, error) {
	if c.apiKey == "" || c.phoneNumberID == "" {
		return "", fmt.Errorf("whatsapp: canal no configurado")
	}

	payload := outboundMessage{
		MessagingProduct: "whatsapp",
		To:               toPhone,
		Type:             "text",
		Text:             outboundText{Body: text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("whatsapp: serializar request: %w", err)
	}

	url := fmt.Sprintf(graphBaseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("whatsapp: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("whatsapp: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("whatsapp: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("whatsapp: leer respuesta: %w", err)
	}

	var parsed sendResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return "", fmt.Errorf("whatsapp: respuesta inválida (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		msg := "error desconocido"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("whatsapp: envío rechazado (HTTP %d): %s", resp.StatusCode, msg)
	}
	if len(parsed.Messages) == 0 {
		return "", fmt.Errorf("whatsapp: respuesta sin ID de mensaje")
	}
	return parsed.Messages[0].ID, nil
}
