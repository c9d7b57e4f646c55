package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kingsbal/kingsbal-backend/internal/response"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/rs/zerolog"
)

// RequireSubscription gates paid content on an unexpired subscription.
//
// In demo mode there is no user store to consult, so the gate passes; a
// request must never fail solely because the persistent store is absent.
// A store lookup error likewise falls open with a warning rather than
// surfacing a 5xx.
func RequireSubscription(store *storage.Store, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "subscription_gate").Logger()

	return func(c *gin.Context) {
		if !store.Persistent() {
			c.Next()
			return
		}

		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		var expiry *time.Time
		err := store.Pool().QueryRow(c.Request.Context(),
			`SELECT subscription_expiry FROM users WHERE id = $1`, claims.UserID,
		).Scan(&expiry)
		if err != nil {
			log.Warn().Err(err).Str("user_id", claims.UserID).Msg("subscription lookup failed, allowing request")
			c.Next()
			return
		}

		if expiry == nil || expiry.Before(time.Now()) {
			response.AbortFail(c, http.StatusForbidden, response.ErrSubscriptionRequired)
			return
		}

		c.Next()
	}
}
