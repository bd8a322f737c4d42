package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/sapkit/middleware"
	"github.com/techmaster-vietnam/sapkit/policy"
)

// PermissionsHandler phục vụ permission context cho dashboard UI:
// effective role, danh sách module và action map của user hiện tại.
// UI dùng dữ liệu này cho ProtectedModule/PermissionButton của nó.
type PermissionsHandler struct {
	policyTable *policy.Table
	defaultRole string
}

// NewPermissionsHandler creates a new permissions handler
func NewPermissionsHandler(policyTable *policy.Table, defaultRole string) *PermissionsHandler {
	return &PermissionsHandler{
		policyTable: policyTable,
		defaultRole: defaultRole,
	}
}

// Get handles the permission context request
// GET /api/permissions
func (h *PermissionsHandler) Get(c *fiber.Ctx) error {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		return goerrorkit.NewAuthError(401, "Yêu cầu đăng nhập")
	}

	// User đã được auth middleware resolve sẵn nên provider là static,
	// scope theo request
	p := policy.NewStaticProvider(h.policyTable, user, h.defaultRole)
	role, _ := p.EffectiveRole()
	rolePolicy := p.Policy()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"role":     role,
			"is_admin": p.IsAdmin(),
			"loading":  false,
			"modules":  rolePolicy.Modules,
			"actions":  rolePolicy.Actions,
		},
	})
}
