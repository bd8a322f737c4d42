package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/sapkit/contracts"
	"github.com/techmaster-vietnam/sapkit/middleware"
	"github.com/techmaster-vietnam/sapkit/odata"
	"github.com/techmaster-vietnam/sapkit/service"
)

// GatewayHandler exposes the two SAP OData proxy endpoints. Responses follow
// the gateway envelope contract with the dashboard frontend:
// {success, data, count} on success, {error, details?} plus an HTTP status on
// failure — these exact shapes are part of the external API, so the handler
// renders them itself instead of delegating to the fiber error handler.
type GatewayHandler struct {
	gatewayService *service.GatewayService
}

// NewGatewayHandler creates a new gateway handler
func NewGatewayHandler(gatewayService *service.GatewayService) *GatewayHandler {
	return &GatewayHandler{gatewayService: gatewayService}
}

// ModuleRequest là body của named-module endpoint
type ModuleRequest struct {
	Module  string `json:"module"`
	Filters string `json:"filters"`
	Top     int    `json:"top"`
	Skip    int    `json:"skip"`
}

// RawRequest là body của raw endpoint
type RawRequest struct {
	Service   string `json:"service"`
	EntitySet string `json:"entitySet"`
	Filters   string `json:"filters"`
	Top       int    `json:"top"`
	Skip      int    `json:"skip"`
}

// FetchModule handles the named-module endpoint
// POST /api/sap/module
func (h *GatewayHandler) FetchModule(c *fiber.Ctx) error {
	if _, ok := middleware.GetUserFromContext(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req ModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if req.Module == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required field: module",
		})
	}

	result, err := h.gatewayService.FetchModule(c.Context(), contracts.SapModuleName(req.Module), service.FetchOptions{
		Filter: req.Filters,
		Top:    req.Top,
		Skip:   req.Skip,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"module":  req.Module,
		"count":   result.Count,
		"data":    result.Data,
	})
}

// FetchRaw handles the raw service/entity-set endpoint
// POST /api/sap/query
func (h *GatewayHandler) FetchRaw(c *fiber.Ctx) error {
	if _, ok := middleware.GetUserFromContext(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req RawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if req.Service == "" || req.EntitySet == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: service and entitySet",
		})
	}

	result, err := h.gatewayService.FetchEntitySet(c.Context(), req.Service, req.EntitySet, service.FetchOptions{
		Filter: req.Filters,
		Top:    req.Top,
		Skip:   req.Skip,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   result.Count,
		"data":    result.Data,
	})
}

// respondError map lỗi của gateway service sang envelope {error, details?}:
//   - UnknownModuleError      -> 400, message liệt kê module hợp lệ
//   - ErrCredentialsMissing   -> 500, lỗi cấu hình của operator
//   - odata.UpstreamError     -> propagate status của SAP nguyên văn
//   - còn lại                 -> 500 catch-all (hiếm khi xảy ra)
func (h *GatewayHandler) respondError(c *fiber.Ctx, err error) error {
	var unknownModule *service.UnknownModuleError
	if errors.As(err, &unknownModule) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": unknownModule.Error(),
		})
	}

	if errors.Is(err, service.ErrCredentialsMissing) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "SAP credentials not configured",
		})
	}

	var upstream *odata.UpstreamError
	if errors.As(err, &upstream) {
		return c.Status(upstream.Status).JSON(fiber.Map{
			"error":   upstream.Error(),
			"details": upstream.Details,
		})
	}

	goerrorkit.LogError(goerrorkit.WrapWithMessage(err, "Lỗi không mong đợi trong SAP gateway"), "GatewayHandler.respondError")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
