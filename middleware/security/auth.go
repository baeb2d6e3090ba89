package security

import (
	"net/http"
	"strings"

	"RoomChat/tools/errs"

	"github.com/gin-gonic/gin"
)

// Context key the auth middleware stores the bearer token under.
const CtxAuthKey = "authorization"

type Options struct {
	HeaderToken               string // default "authorization"
	EnableAuthorizationBearer bool   // accept "Authorization: Bearer xxx"
}

func DefaultOptions() *Options {
	return &Options{
		HeaderToken:               CtxAuthKey,
		EnableAuthorizationBearer: true,
	}
}

// Middleware extracts the bearer token and rejects requests without one.
// Token verification itself belongs to the handlers.
func Middleware(opts *Options) gin.HandlerFunc {
	if opts == nil {
		opts = DefaultOptions()
	}
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(opts.HeaderToken))

		if token == "" && opts.EnableAuthorizationBearer {
			if authz := strings.TrimSpace(c.GetHeader("Authorization")); authz != "" {
				if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					token = strings.TrimSpace(authz[len("bearer "):])
				}
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrTokenRequired)
			return
		}

		c.Set(CtxAuthKey, token)
		c.Next()
	}
}
