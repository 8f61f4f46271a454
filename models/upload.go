package models

import "time"

// UploadStatus is the state of a document upload.
type UploadStatus string

const (
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

// Upload tracks one document through the upload pipeline.
type Upload struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"ownerId"`
	FileName    string       `json:"fileName"`
	Size        int64        `json:"size"`
	ContentType string       `json:"contentType,omitempty"`
	Progress    int          `json:"progress"`
	Status      UploadStatus `json:"status"`
	Error       string       `json:"error,omitempty"`
	URL         string       `json:"url,omitempty"`
	Attempts    int          `json:"attempts"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Terminal reports whether the upload has finished, successfully or not.
func (u Upload) Terminal() bool {
	return u.Status == UploadSuccess || u.Status == UploadError
}
