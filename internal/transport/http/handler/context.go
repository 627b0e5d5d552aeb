package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
)

const principalKey = "restaurant-api.principal"

func SetPrincipal(c *gin.Context, p identity.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal stored by the authentication
// middleware, or an anonymous one.
func PrincipalFrom(c *gin.Context) identity.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return identity.Anonymous()
	}
	p, ok := v.(identity.Principal)
	if !ok {
		return identity.Anonymous()
	}
	return p
}
