package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/application/project"
	"github.com/deeptec/tenders-api/internal/domain/entity"
)

// ProjectHandler maneja el ciclo de vida de proyectos (protegido).
type ProjectHandler struct {
	uc    *project.UseCase
	sheet *project.SheetUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *project.UseCase, sheet *project.SheetUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc, sheet: sheet}
}

// Create godoc
// @Summary      Crear proyecto (parte 1)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.Part1Request  true  "campos de la parte 1"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.SectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), project.FieldsFromSection(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proyectos
// @Description  Más recientes primero. search busca en licitación, sitio y notas.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "página (default 1)"
// @Param        limit   query  int     false  "tamaño de página (default 10, máx 100)"
// @Param        search  query  string  false  "texto a buscar"
// @Param        status  query  string  false  "draft | in_progress | completed | cancelled"
// @Success      200   {object}  dto.ProjectListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var in dto.ProjectListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un proyecto
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EditPart1 godoc
// @Summary      Editar parte 1
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "ID del proyecto"
// @Param        body  body  dto.Part1Request  true  "campos de la parte 1"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/part1 [put]
func (h *ProjectHandler) EditPart1(c *fiber.Ctx) error {
	return h.edit(c, entity.SectionPart1)
}

// EditPart2 godoc
// @Summary      Editar parte 2 (finanzas)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "ID del proyecto"
// @Param        body  body  dto.Part2Request  true  "campos de la parte 2"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/part2 [put]
func (h *ProjectHandler) EditPart2(c *fiber.Ctx) error {
	return h.edit(c, entity.SectionPart2)
}

// EditPart3 godoc
// @Summary      Editar parte 3 (instalación)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "ID del proyecto"
// @Param        body  body  dto.Part3Request  true  "campos de la parte 3"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/part3 [put]
func (h *ProjectHandler) EditPart3(c *fiber.Ctx) error {
	return h.edit(c, entity.SectionPart3)
}

// EditInvoicePayment godoc
// @Summary      Editar factura / pago
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del proyecto"
// @Param        body  body  dto.InvoicePaymentRequest  true  "factura y pago"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/invoice-payment [put]
func (h *ProjectHandler) EditInvoicePayment(c *fiber.Ctx) error {
	return h.edit(c, entity.SectionInvoicePayment)
}

// EditSection godoc
// @Summary      Editar una sección por nombre
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string              true  "ID del proyecto"
// @Param        section  path  string              true  "part1 | part2 | part3 | invoice_payment"
// @Param        body     body  dto.SectionRequest  true  "campos de la sección"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/sections/{section} [put]
func (h *ProjectHandler) EditSection(c *fiber.Ctx) error {
	return h.edit(c, entity.Section(c.Params("section")))
}

func (h *ProjectHandler) edit(c *fiber.Ctx, section entity.Section) error {
	var in dto.SectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.EditSection(c.UserContext(), GetUser(c), c.Params("id"), section, project.FieldsFromSection(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proyecto
// @Description  Solo el creador del proyecto puede eliminarlo.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUser(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proyecto eliminado"})
}

// DownloadPDF godoc
// @Summary      Ficha PDF del proyecto
// @Tags         projects
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/pdf [get]
func (h *ProjectHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.sheet.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
