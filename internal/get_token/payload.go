package get_token

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetPayloadToken reads what CheckAuthorization stored in the request context.
func GetPayloadToken(c echo.Context) PayloadDTO {
	strID, _ := c.Get("token_id").(uuid.UUID)
	strUsuario, _ := c.Get("token_usuario").(string)
	strExpiredAt, _ := c.Get("token_expired_at").(time.Time)
	cookies, _ := c.Get("token_cookies").([]*http.Cookie)

	return PayloadDTO{
		ID:        strID,
		Usuario:   strUsuario,
		ExpiredAt: strExpiredAt,
		Cookies:   cookies,
	}
}
