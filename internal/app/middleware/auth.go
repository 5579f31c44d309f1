package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"shopfront/internal/app/config"
	"shopfront/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie   = "admin_session"
	AdminContextKey = "admin"
	LoginPath       = "/admin"
)

// Blacklist stores revoked session token ids.
type Blacklist interface {
	WriteJWTToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsJWTBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddleware struct {
	Blacklist Blacklist
	Config    *config.Config
	now       func() time.Time
}

// NewAuthMiddleware accepts a nil blacklist; logout then only clears the cookie.
func NewAuthMiddleware(blacklist Blacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
		now:       time.Now,
	}
}

// CheckCredentials compares the submitted pair with the configured admin account.
func (am *AuthMiddleware) CheckCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(am.Config.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(am.Config.Admin.Password)) == 1
	return userOK && passOK
}

// StartSession signs a fresh token and stores it in an HttpOnly cookie.
func (am *AuthMiddleware) StartSession(gCtx *gin.Context) error {
	now := am.now()
	token := jwt.NewWithClaims(am.Config.JWT.SigningMethod, ds.SessionClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: now.Add(am.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "shopfront",
		},
		Admin: true,
	})

	signed, err := token.SignedString([]byte(am.Config.JWT.Token))
	if err != nil {
		return err
	}

	gCtx.SetSameSite(http.SameSiteLaxMode)
	gCtx.SetCookie(SessionCookie, signed, int(am.Config.JWT.ExpiresIn.Seconds()), "/", "", false, true)
	return nil
}

// EndSession revokes the current token (if any) and clears the cookie.
func (am *AuthMiddleware) EndSession(gCtx *gin.Context) {
	defer gCtx.SetCookie(SessionCookie, "", -1, "/", "", false, true)

	raw, err := gCtx.Cookie(SessionCookie)
	if err != nil || raw == "" || am.Blacklist == nil {
		return
	}

	claims, err := am.parseSession(raw)
	if err != nil {
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return
	}
	if err := am.Blacklist.WriteJWTToBlacklist(gCtx.Request.Context(), claims.Id, ttl); err != nil {
		logrus.Errorf("failed to revoke session: %v", err)
	}
}

// WithAdminCheck lets the request through only with a valid, unrevoked session cookie.
// Everything else is redirected to the login page.
func (am *AuthMiddleware) WithAdminCheck() gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		if !am.Authenticated(gCtx) {
			gCtx.Redirect(http.StatusFound, LoginPath)
			gCtx.Abort()
			return
		}
		gCtx.Set(AdminContextKey, true)
		gCtx.Next()
	}
}

// Authenticated validates the session cookie without touching the response.
func (am *AuthMiddleware) Authenticated(gCtx *gin.Context) bool {
	raw, err := gCtx.Cookie(SessionCookie)
	if err != nil || raw == "" {
		return false
	}

	claims, err := am.parseSession(raw)
	if err != nil || !claims.Admin {
		return false
	}

	if am.Blacklist != nil {
		revoked, err := am.Blacklist.IsJWTBlacklisted(gCtx.Request.Context(), claims.Id)
		if err != nil {
			logrus.Errorf("failed to check session revocation: %v", err)
			return false
		}
		if revoked {
			return false
		}
	}
	return true
}

func (am *AuthMiddleware) parseSession(raw string) (*ds.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &ds.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != am.Config.JWT.SigningMethod {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(am.Config.JWT.Token), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// IsAdmin reads the flag set by WithAdminCheck.
func IsAdmin(gCtx *gin.Context) bool {
	return gCtx.GetBool(AdminContextKey)
}
