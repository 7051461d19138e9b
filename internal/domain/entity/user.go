package entity

import "time"

// Role rol fijo de un usuario.
type Role string

// Roles válidos para User.
const (
	RoleProjectTeam Role = "project_team"
	RoleFinanceTeam Role = "finance_team"
	RoleAllUsers    Role = "all_users" // solo lectura
	RoleAdmin       Role = "admin"
)

// Roles devuelve el conjunto cerrado de roles.
func Roles() []Role {
	return []Role{RoleProjectTeam, RoleFinanceTeam, RoleAllUsers, RoleAdmin}
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleProjectTeam, RoleFinanceTeam, RoleAllUsers, RoleAdmin:
		return true
	}
	return false
}

// Permissions override explícito por usuario. Si está presente reemplaza
// por completo los permisos derivados del rol.
type Permissions struct {
	CanViewAll            bool
	CanEditPart1          bool
	CanEditPart2          bool
	CanEditPart3          bool
	CanEditInvoicePayment bool
}

// User representa un usuario del sistema. Se aprovisiona por seed o por un admin.
type User struct {
	ID                 string
	Username           string
	PasswordHash       string // bcrypt hash
	Role               Role
	Permissions        *Permissions // nil = se usan los permisos por rol
	IsActive           bool
	ResetCodeHash      string
	ResetCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
