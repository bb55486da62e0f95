package login

import (
	"time"

	"github.com/google/uuid"
)

type RequestLogin struct {
	Usuario string `json:"usuario" validate:"required"`
	Senha   string `json:"senha" validate:"required"`
}

type ResponseLogin struct {
	Token     string    `json:"token"`
	Sessao    uuid.UUID `json:"sessao"`
	ExpiredAt time.Time `json:"expired_at"`
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
