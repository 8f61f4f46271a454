package storage

import (
	"context"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/require"
)

func TestNewCloudinaryTransportRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryTransport("", "key", "secret")
	require.Error(t, err)
}

func TestTransferNeedsStagedFile(t *testing.T) {
	tr, err := NewCloudinaryTransport("demo", "key", "secret")
	require.NoError(t, err)
	_, err = tr.Transfer(context.Background(), models.Upload{ID: "u1"}, "")
	require.ErrorIs(t, err, ErrNoStagedFile)
}

func TestRemoveSkipsUploadsNeverStored(t *testing.T) {
	tr, err := NewCloudinaryTransport("demo", "key", "secret")
	require.NoError(t, err)
	require.NoError(t, tr.Remove(context.Background(), models.Upload{ID: "u1", Status: models.UploadError}))
}

func TestResourceTypeOf(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/raw/upload/v1/medibook/documents/u1.pdf": "raw",
		"https://res.cloudinary.com/demo/video/upload/v1/medibook/documents/u2":   "video",
		"https://res.cloudinary.com/demo/image/upload/v1/medibook/documents/u3":   "image",
		"https://res.cloudinary.com/demo/image/private/v1/medibook/documents/u4":  "image",
		"::not a url":          "image",
		"https://example.com/": "image",
	}
	for in, want := range cases {
		require.Equal(t, want, resourceTypeOf(in), in)
	}
}
