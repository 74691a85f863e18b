// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helperAuth "academix_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi token HMAC dari identity provider dan meng-hydrate
// locals yang dibaca helperAuth.GetActorFromLocals. Mekanisme penerbitan
// token bukan urusan service ini.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		// 3) Validasi exp (dengan sedikit leeway untuk clock skew)
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().After(time.Unix(int64(exp), 0).Add(30 * time.Second)) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
		}

		// Simpan raw claims (opsional)
		c.Locals("jwt_claims", claims)

		// === HYDRATE LOCALS YANG DIHARAPKAN HELPER ===

		uid := numClaim(claims, "user_id")
		if uid == 0 {
			uid = numClaim(claims, "sub")
		}
		if uid == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals(helperAuth.LocUserID, uid)

		if v, ok := claims["role"].(string); ok {
			c.Locals(helperAuth.LocRoleName, strings.TrimSpace(v))
		}
		if v, ok := claims["role_description"].(string); ok {
			c.Locals(helperAuth.LocRoleDesc, strings.TrimSpace(v))
		}
		if v, ok := claims["permissions"]; ok {
			c.Locals(helperAuth.LocPermissions, stringSliceClaim(v))
		}

		return c.Next()
	}
}

// numClaim: klaim numeric bisa datang sebagai float64 (JSON) atau string.
func numClaim(claims jwt.MapClaims, key string) uint {
	switch v := claims[key].(type) {
	case float64:
		if v > 0 {
			return uint(v)
		}
	case string:
		s := strings.TrimSpace(v)
		var n uint
		for _, r := range s {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + uint(r-'0')
		}
		return n
	}
	return 0
}

func stringSliceClaim(v any) []string {
	out := []string{}
	switch arr := v.(type) {
	case []string:
		return arr
	case []interface{}:
		for _, it := range arr {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
