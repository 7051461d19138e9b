package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/domain"
)

// LocalError guarda el error original para que RequestLogger lo registre.
const LocalError = "error"

// writeError traduce los errores de dominio a status + dto.ErrorResponse.
// Los errores no tipados (storage) se responden como 500 sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	c.Locals(LocalError, err)

	var (
		denied  *domain.AuthorizationDeniedError
		section *domain.InvalidSectionError
		verr    *domain.ValidationError
	)
	switch {
	case errors.As(err, &denied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: denied.Error()})
	case errors.As(err, &section):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SECTION", Message: section.Error()})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(validationResponse(verr))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidResetCode):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RESET_CODE", Message: err.Error()})
	case errors.Is(err, domain.ErrRegistrationClosed):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "REGISTRATION_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func validationResponse(verr *domain.ValidationError) dto.ErrorResponse {
	out := dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Errors:  make([]dto.FieldErrorDTO, 0, len(verr.Fields)),
	}
	for _, f := range verr.Fields {
		fe := dto.FieldErrorDTO{Field: f.Field, Message: f.Message}
		var enumErr *domain.InvalidEnumValueError
		if errors.As(f.Err, &enumErr) {
			fe.Accepted = enumErr.Accepted
		}
		out.Errors = append(out.Errors, fe)
	}
	return out
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
