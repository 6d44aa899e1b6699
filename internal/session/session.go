// Package session: anonim müşteri oturum çerezi. Kimlik doğrulama değil;
// sepeti ve rate limit sayacını aynı tarayıcıya bağlamak için kullanılır.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const CookieName = "lanaim_session"

// Token: mevcut oturum token'ını döner, yoksa üretip çereze yazar
func Token(c *fiber.Ctx) string {
	token := c.Cookies(CookieName)
	if token != "" {
		return token
	}

	token = uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return token
}
