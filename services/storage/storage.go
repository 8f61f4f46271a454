package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"medibook/models"
	"medibook/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// DefaultFolder is where patient documents are stored.
const DefaultFolder = "medibook/documents"

var ErrNoStagedFile = errors.New("no staged file to transfer")

// CloudinaryTransport uploads staged documents to Cloudinary.
type CloudinaryTransport struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

// NewCloudinaryTransport creates a transport from account credentials.
func NewCloudinaryTransport(cloudName, apiKey, apiSecret string) (*CloudinaryTransport, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	utils.GetLogger().Info("cloudinary transport ready", zap.String("cloudName", cloudName))
	return &CloudinaryTransport{cld: cld, Folder: DefaultFolder}, nil
}

// Transfer uploads the staged file under the upload's id and returns its secure URL.
func (t *CloudinaryTransport) Transfer(ctx context.Context, u models.Upload, path string) (string, error) {
	if path == "" {
		return "", ErrNoStagedFile
	}
	params := uploader.UploadParams{
		Folder:       t.Folder,
		PublicID:     u.ID,
		ResourceType: "auto",
	}
	result, err := t.cld.Upload.Upload(ctx, path, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("no public ID returned")
	}
	return result.SecureURL, nil
}

// Remove deletes the stored copy of a finished upload.
func (t *CloudinaryTransport) Remove(ctx context.Context, u models.Upload) error {
	if u.URL == "" {
		return nil
	}
	return t.DeleteFile(ctx, t.Folder+"/"+u.ID, resourceTypeOf(u.URL))
}

// DeleteFile removes a stored document by public ID.
func (t *CloudinaryTransport) DeleteFile(ctx context.Context, publicID, resourceType string) error {
	result, err := t.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected delete: %s", result.Error.Message)
	}
	utils.GetLogger().Info("cloudinary asset deleted", zap.String("publicID", publicID), zap.String("result", result.Result))
	return nil
}

// resourceTypeOf reads the resource type from a delivery URL of the form
// https://res.cloudinary.com/<cloud>/<type>/upload/... Uploads use
// ResourceType "auto", so the URL is the only record of what was stored.
func resourceTypeOf(deliveryURL string) string {
	parsed, err := url.Parse(deliveryURL)
	if err != nil {
		return "image"
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) >= 3 && parts[2] == "upload" {
		switch parts[1] {
		case "image", "video", "raw":
			return parts[1]
		}
	}
	return "image"
}
