package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrExpiredToken = errors.New("token has expired")
var ErrInvalidToken = errors.New("token is invalid")

// Payload identifies an admin session. The remote cookies stay server side, keyed by ID.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	Usuario   string    `json:"usuario"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

func NewPayload(sessao uuid.UUID, usuario string, duration time.Duration) *Payload {
	now := time.Now()
	return &Payload{
		ID:        sessao,
		Usuario:   usuario,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}
}

func (payload *Payload) valid() error {
	if time.Now().After(payload.ExpiredAt) {
		return ErrExpiredToken
	}
	return nil
}
