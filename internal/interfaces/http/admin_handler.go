package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/application/usecase"
)

// AdminHandler administración de usuarios (solo rol admin).
type AdminHandler struct {
	uc *usecase.UserUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.UserUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetPermissions godoc
// @Summary      Asignar override de permisos
// @Description  El override reemplaza por completo los permisos del rol.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID del usuario"
// @Param        body  body  dto.PermissionsDTO  true  "permisos explícitos"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/permissions [put]
func (h *AdminHandler) SetPermissions(c *fiber.Ctx) error {
	var in dto.PermissionsDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetPermissions(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ClearPermissions godoc
// @Summary      Quitar override de permisos
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/permissions [delete]
func (h *AdminHandler) ClearPermissions(c *fiber.Ctx) error {
	out, err := h.uc.ClearPermissions(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
