package ds

import (
	"github.com/golang-jwt/jwt"
)

// SessionClaims is the payload of the admin session cookie.
type SessionClaims struct {
	jwt.StandardClaims
	Admin bool `json:"admin"`
}
