package dto

type UserDTO struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	Enabled     bool    `json:"enabled"`
}

type UpdateUserStatusDTO struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type ValidateUsernameDTO struct {
	Username string `json:"username" validate:"required,username_format"`
}

type UsernameValidationResultDTO struct {
	Valid     bool   `json:"valid"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

type ResetPasswordResultDTO struct {
	TemporaryPassword string `json:"temporary_password"`
}
