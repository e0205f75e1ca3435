package dto

type MediaUploadResponse struct {
	URL string `json:"url"`
}
