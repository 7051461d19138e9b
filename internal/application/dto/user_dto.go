package dto

import "time"

// PermissionsDTO override de permisos por usuario.
type PermissionsDTO struct {
	CanViewAll            bool `json:"can_view_all"`
	CanEditPart1          bool `json:"can_edit_part1"`
	CanEditPart2          bool `json:"can_edit_part2"`
	CanEditPart3          bool `json:"can_edit_part3"`
	CanEditInvoicePayment bool `json:"can_edit_invoice_payment"`
}

// UserResponse salida de un usuario (sin password ni códigos de recuperación).
// Permissions es el override (nil si usa los del rol); Effective los que realmente aplican.
type UserResponse struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Role        string          `json:"role"`
	Permissions *PermissionsDTO `json:"permissions,omitempty"`
	Effective   PermissionsDTO  `json:"effective_permissions"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UserSummary identidad resumida de creador / último editor.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// TokenResponse token renovado.
type TokenResponse struct {
	Token string `json:"token"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// ForgotPasswordRequest solicitud de código de recuperación.
type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required"`
}

// ForgotPasswordResponse ResetCode solo se devuelve en development.
type ForgotPasswordResponse struct {
	Message   string `json:"message"`
	ResetCode string `json:"reset_code,omitempty"`
}

// ResetPasswordRequest restablecimiento con código.
type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	ResetCode   string `json:"reset_code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// CreateUserRequest alta de usuario (seed / admin). Password en texto, se hashea en el use case.
type CreateUserRequest struct {
	Username    string          `json:"username" validate:"required,min=3,max=30"`
	Password    string          `json:"password" validate:"required,min=6"`
	Role        string          `json:"role" validate:"required,oneof=project_team finance_team all_users admin"`
	Permissions *PermissionsDTO `json:"permissions,omitempty"`
}

// UserListResponse listado de usuarios para el admin.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
