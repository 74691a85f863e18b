// internals/helpers/auth/actor.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys yang di-hydrate oleh middleware auth (HARUS seragam).
const (
	LocUserID      = "user_id"
	LocRoleName    = "role_name"
	LocRoleDesc    = "role_description"
	LocPermissions = "permissions"
)

// ActorContext dibawa eksplisit ke workflow service: di-resolve sekali
// di boundary dari klaim JWT, tidak pernah di-fetch ulang di tengah transaksi.
type ActorContext struct {
	ID              uint
	RoleName        string
	RoleDescription string
	Permissions     []string
}

// HasPermission: cek permission set actor (case-insensitive).
func (a ActorContext) HasPermission(perm string) bool {
	perm = strings.ToLower(strings.TrimSpace(perm))
	for _, p := range a.Permissions {
		if strings.ToLower(strings.TrimSpace(p)) == perm {
			return true
		}
	}
	return false
}

// GetActorFromLocals membaca identitas actor hasil middleware auth.
// 401 kalau tidak ada user terautentikasi di request.
func GetActorFromLocals(c *fiber.Ctx) (ActorContext, error) {
	id, ok := c.Locals(LocUserID).(uint)
	if !ok || id == 0 {
		return ActorContext{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user tidak ditemukan di token")
	}

	actor := ActorContext{ID: id}
	if v, ok := c.Locals(LocRoleName).(string); ok {
		actor.RoleName = v
	}
	if v, ok := c.Locals(LocRoleDesc).(string); ok {
		actor.RoleDescription = v
	}
	switch v := c.Locals(LocPermissions).(type) {
	case []string:
		actor.Permissions = v
	case []interface{}:
		for _, it := range v {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				actor.Permissions = append(actor.Permissions, s)
			}
		}
	}
	return actor, nil
}
