package dto

type RecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
	// Destination is the address the code is mailed to; the original client
	// allows it to differ from the account email.
	Destination string `json:"destination" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required"`
}
