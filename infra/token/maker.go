package token

import (
	"time"

	"github.com/google/uuid"
)

type Maker interface {
	CreateToken(sessao uuid.UUID, usuario string, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}
