// Package qr encodes product QR payloads and renders them as images.
package qr

import (
	"encoding/json"
	"strings"

	"stockqr/internal/models"
)

// Payload is the text carried by a product QR code.
type Payload struct {
	ID     string `json:"id,omitempty"`
	QRCode string `json:"qrCode,omitempty"`
	Name   string `json:"name,omitempty"`
}

// PayloadFor returns the payload printed on a product label.
func PayloadFor(p models.Product) Payload {
	return Payload{ID: p.ID, QRCode: p.QRCode, Name: p.Name}
}

// Encode serializes the payload as JSON text.
func (p Payload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ParsePayload interprets decoded scanner text. Text that is not JSON is
// taken as a literal QR code. For a JSON object only the string-valued id,
// qrCode and name fields are read; fields of any other type are ignored.
// JSON that is not an object yields an empty payload, which resolves to
// nothing.
func ParsePayload(text string) Payload {
	trimmed := strings.TrimSpace(text)
	if !json.Valid([]byte(trimmed)) {
		return Payload{QRCode: text}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return Payload{}
	}
	return Payload{
		ID:     stringField(fields, "id"),
		QRCode: stringField(fields, "qrCode"),
		Name:   stringField(fields, "name"),
	}
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}
