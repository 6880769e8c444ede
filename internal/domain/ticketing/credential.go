package ticketing

import (
	"encoding/json"
	"fmt"
)

// CredentialPayload is the structured record embedded in a ticket's QR
// code. Serialization uses encoding/json with a fixed field order, so the
// bytes are deterministic for a given payload and HMAC verification is
// stable across processes.
type CredentialPayload struct {
	TicketID     uint   `json:"ticketId"`
	OrderID      uint   `json:"orderId"`
	EventID      uint   `json:"eventId"`
	AttendeeName string `json:"attendeeName"`
	IssuedAt     int64  `json:"issuedAt"` // epoch milliseconds
}

// Encode serializes the payload to its canonical byte form.
func (p CredentialPayload) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credential payload: %w", err)
	}
	return data, nil
}

// DecodeCredentialPayload parses a scanned QR payload.
func DecodeCredentialPayload(data []byte) (CredentialPayload, error) {
	var p CredentialPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return CredentialPayload{}, fmt.Errorf("failed to decode credential payload: %w", err)
	}
	if p.TicketID == 0 {
		return CredentialPayload{}, fmt.Errorf("credential payload missing ticket ID")
	}
	return p, nil
}

// CredentialSigner signs and verifies ticket credentials. The HMAC
// implementation lives in infrastructure; the domain only depends on this
// contract.
type CredentialSigner interface {
	Sign(payload []byte) string
	Verify(payload []byte, signature string) bool
}
