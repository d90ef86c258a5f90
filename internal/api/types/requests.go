package types

import "github.com/craftfolio/engine/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SaveResumeRequest matches the client payload: the draft arrives nested
// under resumeData.
type SaveResumeRequest struct {
	ResumeData *models.ResumeDraft `json:"resumeData" validate:"required"`
}

// ProfilePictureRequest sets or, with both fields null, clears the avatar.
type ProfilePictureRequest struct {
	ProfilePicture         *string `json:"profilePicture"`
	ProfilePicturePublicID *string `json:"profilePicturePublicId"`
}
