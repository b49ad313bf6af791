// Package media uploads submitted photo payloads to Cloudinary and hands
// back shareable links.
package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader wraps the Cloudinary client behind the single call the sync
// orchestrator needs.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewUploader builds an uploader from Cloudinary credentials.
func NewUploader(cloudName, apiKey, apiSecret, folder string) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &Uploader{cld: cld, folder: folder}, nil
}

// UploadBase64 uploads a base64 image payload under the given name and
// returns its secure URL. An empty payload uploads nothing and yields an
// empty link. Payloads may arrive with or without a data-URI header.
func (u *Uploader) UploadBase64(ctx context.Context, payload, name string) (string, error) {
	if payload == "" {
		return "", nil
	}
	if !strings.HasPrefix(payload, "data:") {
		payload = "data:image/jpeg;base64," + payload
	}

	resp, err := u.cld.Upload.Upload(ctx, payload, uploader.UploadParams{
		PublicID: name,
		Folder:   u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
