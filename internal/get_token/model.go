package get_token

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

type PayloadDTO struct {
	ID        uuid.UUID      `json:"id"`
	Usuario   string         `json:"usuario"`
	ExpiredAt time.Time      `json:"expired_at"`
	Cookies   []*http.Cookie `json:"-"`
}
