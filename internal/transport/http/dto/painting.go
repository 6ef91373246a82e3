package dto

import "dcolors/internal/domain/models"

type UploadResponse struct {
	Images   []models.ImageAsset   `json:"images"`
	Rejected []models.RejectedFile `json:"rejected"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}
