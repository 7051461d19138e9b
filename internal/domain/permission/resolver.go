// Package permission decide si un usuario puede editar una sección de un Project.
//
// La decisión tiene dos fuentes excluyentes:
//   - Explicit: el usuario tiene un override de permisos; manda siempre.
//   - RoleDefault: sin override, se aplican los permisos por defecto del rol.
//
// El override reemplaza a los permisos del rol, nunca se combinan.
package permission

import (
	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
)

// Source origen de la decisión de permisos para un usuario.
type Source interface {
	allows(section entity.Section) bool
	denial(section entity.Section) *domain.AuthorizationDeniedError
}

// Explicit permisos asignados explícitamente al usuario.
type Explicit struct {
	Permissions entity.Permissions
}

// RoleDefault permisos derivados del rol.
type RoleDefault struct {
	Role entity.Role
}

// SourceFor elige la fuente de permisos del usuario.
func SourceFor(u *entity.User) Source {
	if u.Permissions != nil {
		return Explicit{Permissions: *u.Permissions}
	}
	return RoleDefault{Role: u.Role}
}

func (e Explicit) allows(section entity.Section) bool {
	switch section {
	case entity.SectionPart1:
		return e.Permissions.CanEditPart1
	case entity.SectionPart2:
		return e.Permissions.CanEditPart2
	case entity.SectionPart3:
		return e.Permissions.CanEditPart3
	case entity.SectionInvoicePayment:
		return e.Permissions.CanEditInvoicePayment
	}
	return false
}

func (e Explicit) denial(section entity.Section) *domain.AuthorizationDeniedError {
	return &domain.AuthorizationDeniedError{
		Section:            string(section),
		RequiredPermission: PermissionName(section),
	}
}

func (r RoleDefault) allows(section entity.Section) bool {
	for _, role := range RequiredRoles(section) {
		if r.Role == role {
			return true
		}
	}
	return false
}

func (r RoleDefault) denial(section entity.Section) *domain.AuthorizationDeniedError {
	roles := RequiredRoles(section)
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return &domain.AuthorizationDeniedError{
		Section:       string(section),
		RequiredRoles: names,
		Reason:        deniedMessages[section],
	}
}

var deniedMessages = map[entity.Section]string{
	entity.SectionPart1:          "acceso denegado: solo el equipo de proyecto puede editar esta sección",
	entity.SectionPart2:          "acceso denegado: solo el equipo de finanzas puede editar esta sección",
	entity.SectionPart3:          "acceso denegado: solo el equipo de proyecto puede editar esta sección",
	entity.SectionInvoicePayment: "acceso denegado: solo los equipos de proyecto y finanzas pueden editar esta sección",
}

// RequiredRoles roles que por defecto pueden editar la sección.
func RequiredRoles(section entity.Section) []entity.Role {
	switch section {
	case entity.SectionPart1, entity.SectionPart3:
		return []entity.Role{entity.RoleProjectTeam, entity.RoleAdmin}
	case entity.SectionPart2:
		return []entity.Role{entity.RoleFinanceTeam, entity.RoleAdmin}
	case entity.SectionInvoicePayment:
		return []entity.Role{entity.RoleFinanceTeam, entity.RoleProjectTeam, entity.RoleAdmin}
	}
	return nil
}

// PermissionName nombre del flag de override que gobierna la sección.
func PermissionName(section entity.Section) string {
	switch section {
	case entity.SectionPart1:
		return "canEditPart1"
	case entity.SectionPart2:
		return "canEditPart2"
	case entity.SectionPart3:
		return "canEditPart3"
	case entity.SectionInvoicePayment:
		return "canEditInvoicePayment"
	}
	return ""
}

// CanEdit indica si el usuario puede editar la sección.
// Devuelve *domain.InvalidSectionError si la sección no existe.
func CanEdit(u *entity.User, section entity.Section) (bool, error) {
	if !section.Valid() {
		return false, &domain.InvalidSectionError{Section: string(section)}
	}
	if u == nil {
		return false, nil
	}
	return SourceFor(u).allows(section), nil
}

// Authorize como CanEdit, pero devuelve *domain.AuthorizationDeniedError cuando se niega.
func Authorize(u *entity.User, section entity.Section) error {
	ok, err := CanEdit(u, section)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if u == nil {
		return &domain.AuthorizationDeniedError{Section: string(section), Reason: "usuario no autenticado"}
	}
	return SourceFor(u).denial(section)
}

// CanView todo usuario autenticado puede ver los proyectos.
func CanView(u *entity.User) bool {
	return u != nil
}

// Effective permisos efectivos del usuario (override o derivados del rol), para mostrar en el perfil.
func Effective(u *entity.User) entity.Permissions {
	if u.Permissions != nil {
		return *u.Permissions
	}
	src := RoleDefault{Role: u.Role}
	return entity.Permissions{
		CanViewAll:            true,
		CanEditPart1:          src.allows(entity.SectionPart1),
		CanEditPart2:          src.allows(entity.SectionPart2),
		CanEditPart3:          src.allows(entity.SectionPart3),
		CanEditInvoicePayment: src.allows(entity.SectionInvoicePayment),
	}
}
