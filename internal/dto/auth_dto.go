package dto

import "github.com/campusfolio/ascent-api/internal/models"

// LoginRequest carries demo credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse describes the authenticated identity.
type IdentityResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Batch      string `json:"batch,omitempty"`
	RollNumber string `json:"roll_number,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// LoginResponse carries the issued token together with the identity.
type LoginResponse struct {
	Token string           `json:"token"`
	User  IdentityResponse `json:"user"`
}

// NewIdentityResponse converts a User model into a DTO.
func NewIdentityResponse(model models.User) IdentityResponse {
	return IdentityResponse{
		ID:         model.ID,
		Name:       model.Name,
		Email:      model.Email,
		Role:       model.Role,
		Department: model.Department,
		Batch:      model.Batch,
		RollNumber: model.RollNumber,
		AvatarURL:  model.AvatarURL,
	}
}
