package server

import (
	"time"

	"moto-auction/internal/auth"
	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/services/auction/helpers"
	"moto-auction/utils"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// TokenParser turns a bearer token into the calling actor
type TokenParser interface {
	Parse(token string) (model.Actor, error)
}

// RequestIDMiddleware propagates the caller's request id or assigns a new one
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = utils.GenerateID()
	}
	c.Set("request_id", id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString("request_id"),
	}
	if actor, ok := helpers.ActorFrom(c); ok {
		fields["user_id"] = actor.UserID
	}
	utils.Info("HTTP Request", fields)
}

// AuthMiddleware attaches the actor named by a bearer token. The token comes from the
// Authorization header, or the token query parameter for websocket clients that
// cannot set headers. When required is false anonymous requests pass through, but
// a token that is present and invalid is always rejected.
func AuthMiddleware(parser TokenParser, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			token = c.Query("token")
		}

		if token == "" {
			if required {
				helpers.RespondError(c, "AuthMiddleware", biddingerrors.ErrUnauthorized, map[string]any{"path": c.Request.URL.Path})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		actor, err := parser.Parse(token)
		if err != nil {
			helpers.RespondError(c, "AuthMiddleware", err, map[string]any{"path": c.Request.URL.Path})
			c.Abort()
			return
		}
		helpers.SetActor(c, actor)
		c.Next()
	}
}
