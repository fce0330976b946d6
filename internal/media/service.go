package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rohandesai/brandline-backend/pkg/config"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
)

// allowedImageTypes is the sniffed content-type allow-list for catalog
// imagery. Detection runs on the bytes, not the client-supplied filename.
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type objectUploader interface {
	UploadObject(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// UploadInput is one incoming file from a multipart form.
type UploadInput struct {
	FileName string
	Data     []byte
}

// UploadOutput reports where the stored object landed.
type UploadOutput struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}

// Service stores uploaded images and hands back public URLs.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	UploadAll(ctx context.Context, inputs []UploadInput) ([]string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	uploader  objectUploader
	keyPrefix string
	maxBytes  int64
	newID     func() string
}

// NewService constructs a media service instance.
func NewService(uploader objectUploader, gcsCfg config.GCSConfig, mediaCfg config.MediaConfig) (Service, error) {
	if uploader == nil {
		return nil, fmt.Errorf("object uploader required")
	}
	maxBytes := int64(mediaCfg.MaxUploadMB) * 1024 * 1024
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	prefix := strings.Trim(gcsCfg.KeyPrefix, "/")
	if prefix == "" {
		prefix = "uploads"
	}
	return &service{
		uploader:  uploader,
		keyPrefix: prefix,
		maxBytes:  maxBytes,
		newID:     uuid.NewString,
	}, nil
}

// Upload validates, stores, and returns the public URL for one image.
func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	if len(input.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file is empty")
	}
	if int64(len(input.Data)) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("uploaded file exceeds %d MB", s.maxBytes/(1024*1024)))
	}

	detected := mimetype.Detect(input.Data)
	contentType := normalizeContentType(detected.String())
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported file type %q; images only", contentType))
	}

	key := s.buildKey(input.FileName, ext)
	url, err := s.uploader.UploadObject(ctx, key, contentType, bytes.NewReader(input.Data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "gcs: upload object")
	}

	return &UploadOutput{URL: url, Key: key, ContentType: contentType}, nil
}

// UploadAll stores every file and returns the public URLs in input order.
// The first failure aborts the batch; already-stored objects are kept since
// the admin retries the whole form.
func (s *service) UploadAll(ctx context.Context, inputs []UploadInput) ([]string, error) {
	urls := make([]string, 0, len(inputs))
	for _, input := range inputs {
		out, err := s.Upload(ctx, input)
		if err != nil {
			return nil, err
		}
		urls = append(urls, out.URL)
	}
	return urls, nil
}

// Delete removes a stored object by key.
func (s *service) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "object key is required")
	}
	if err := s.uploader.DeleteObject(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "gcs: delete object")
	}
	return nil
}

func (s *service) buildKey(fileName, ext string) string {
	base := slugBase(fileName)
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s/%s-%s%s", s.keyPrefix, base, s.newID(), ext)
}

func slugBase(fileName string) string {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	base = strings.ToLower(strings.TrimSpace(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func normalizeContentType(value string) string {
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = value[:idx]
	}
	return strings.ToLower(strings.TrimSpace(value))
}
