package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/storage"
)

const principalKey = "principal"

// Claims is the JWT payload of both token kinds.
type Claims struct {
	Auth string `json:"auth"`
	jwt.RegisteredClaims
}

// principal is the member a request acts as.
type principal struct {
	MemberID string
	Auth     string
}

func (p *principal) isAdmin() bool {
	return p != nil && p.Auth == model.RoleAdmin
}

func (s *Server) issueToken(memberID, auth string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(ttl)
	claims := Claims{
		Auth: auth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (s *Server) parseToken(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, errors.New("empty token")
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// storedRefresh validates a refresh token and checks that logout has not revoked it.
func (s *Server) storedRefresh(ctx context.Context, tokenStr string) (*Claims, bool) {
	claims, err := s.parseToken(tokenStr)
	if err != nil {
		return nil, false
	}
	record, err := s.store.GetRefreshToken(ctx, tokenStr)
	if err != nil || record.MemberID != claims.Subject || !record.ExpiresAt.After(s.now()) {
		return nil, false
	}
	return claims, true
}

// authenticate resolves the caller from the Authorization/X-Refresh-Token
// headers, falling back to the token cookies. It never rejects; guards do.
func (s *Server) authenticate(c *fiber.Ctx) error {
	access := bearerToken(c.Get(fiber.HeaderAuthorization))
	if access == "" {
		access = c.Cookies(apiclient.AccessTokenCookie)
	}
	refresh := strings.TrimSpace(c.Get(apiclient.RefreshTokenHeader))
	if refresh == "" {
		refresh = c.Cookies(apiclient.RefreshTokenCookie)
	}
	ctx := c.UserContext()

	if claims, err := s.parseToken(access); err == nil {
		if _, ok := s.storedRefresh(ctx, refresh); ok {
			c.Locals(principalKey, &principal{MemberID: claims.Subject, Auth: claims.Auth})
		}
		return c.Next()
	}
	claims, ok := s.storedRefresh(ctx, refresh)
	if !ok {
		return c.Next()
	}
	token, expires, err := s.issueToken(claims.Subject, claims.Auth, s.cfg.DevServer.AccessTokenTTL)
	if err != nil {
		s.logger.Error("reissue access token", zap.Error(err))
		return c.Next()
	}
	c.Cookie(s.tokenCookie(apiclient.AccessTokenCookie, token, expires))
	s.logger.Info("access token reissued", zap.String("member_id", claims.Subject))
	c.Locals(principalKey, &principal{MemberID: claims.Subject, Auth: claims.Auth})
	return c.Next()
}

func currentPrincipal(c *fiber.Ctx) *principal {
	p, _ := c.Locals(principalKey).(*principal)
	return p
}

func (s *Server) requireMember(c *fiber.Ctx) error {
	if currentPrincipal(c) == nil {
		return s.fail(c, http.StatusUnauthorized, "authentication required")
	}
	return c.Next()
}

func (s *Server) requireAdmin(c *fiber.Ctx) error {
	p := currentPrincipal(c)
	if p == nil {
		return s.fail(c, http.StatusUnauthorized, "authentication required")
	}
	if !p.isAdmin() {
		return s.fail(c, http.StatusForbidden, "access denied")
	}
	return c.Next()
}

func (s *Server) tokenCookie(name, value string, expires time.Time) *fiber.Cookie {
	maxAge := int(expires.Sub(s.now()) / time.Second)
	if maxAge < 1 {
		maxAge = 1
	}
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func (s *Server) expireCookie(name string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// seedAdmin creates the configured administrator unless the id exists.
func (s *Server) seedAdmin(ctx context.Context) error {
	id := strings.TrimSpace(s.cfg.DevServer.AdminID)
	if id == "" {
		return nil
	}
	if _, err := s.store.GetMember(ctx, id); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.DevServer.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	err = s.store.PutMember(ctx, &model.Member{MemberID: id, PasswordHash: string(hash), Auth: model.RoleAdmin})
	if err != nil && !errors.Is(err, storage.ErrConflict) {
		return err
	}
	s.logger.Info("admin account seeded", zap.String("member_id", id))
	return nil
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
