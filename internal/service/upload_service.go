package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/storage"
	"lawfirm-cms/pkg/apierror"
)

const (
	thumbnailMaxEdge = 400
	thumbnailQuality = 80
)

var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// UploadService stores admin-uploaded assets (blog images, team photos,
// documents) on disk under date-partitioned names and generates a bounded
// thumbnail for raster images.
type UploadService struct {
	store   *storage.Storage
	maxSize int64
	audit   *AuditService
}

func NewUploadService(store *storage.Storage, maxSize int64, audit *AuditService) *UploadService {
	return &UploadService{store: store, maxSize: maxSize, audit: audit}
}

func (s *UploadService) Save(ctx context.Context, r io.Reader, size int64, contentType string, actor string) (model.UploadResult, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return model.UploadResult{}, apierror.New("UNSUPPORTED_TYPE", "file type is not allowed", contentType, http.StatusUnsupportedMediaType)
	}
	if size > s.maxSize {
		return model.UploadResult{}, apierror.New("FILE_TOO_LARGE",
			fmt.Sprintf("file exceeds the %d byte limit", s.maxSize), "", http.StatusRequestEntityTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return model.UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return model.UploadResult{}, apierror.New("FILE_TOO_LARGE",
			fmt.Sprintf("file exceeds the %d byte limit", s.maxSize), "", http.StatusRequestEntityTooLarge)
	}

	name := uuid.NewString() + ext
	relPath := filepath.Join(time.Now().UTC().Format("2006/01"), name)

	written, err := s.store.Write(relPath, bytes.NewReader(data))
	if err != nil {
		return model.UploadResult{}, err
	}

	result := model.UploadResult{
		Path:        "/" + filepath.ToSlash(relPath),
		Size:        written,
		ContentType: contentType,
	}

	if strings.HasPrefix(contentType, "image/") {
		if thumbPath, err := s.writeThumbnail(data, relPath); err == nil {
			result.ThumbnailPath = "/" + filepath.ToSlash(thumbPath)
		}
		// A failed thumbnail never fails the upload; the original is
		// already stored.
	}

	s.audit.Record(ctx, actor, "upload", "file", result.Path)
	return result, nil
}

func (s *UploadService) writeThumbnail(data []byte, relPath string) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("empty image")
	}

	scale := float64(thumbnailMaxEdge) / float64(max(width, height))
	if scale > 1 {
		scale = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(width)*scale), int(float64(height)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return "", err
	}

	thumbPath := thumbnailPathFor(relPath)
	if _, err := s.store.Write(thumbPath, &buf); err != nil {
		return "", err
	}
	return thumbPath, nil
}

func (s *UploadService) Remove(ctx context.Context, relPath string, actor string) error {
	relPath = strings.TrimPrefix(relPath, "/")
	if err := s.store.Remove(relPath); err != nil {
		return err
	}
	if err := s.store.Remove(thumbnailPathFor(relPath)); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, "delete", "file", "/"+filepath.ToSlash(relPath))
	return nil
}

func thumbnailPathFor(relPath string) string {
	dir, name := filepath.Split(relPath)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, "thumbs", base+".jpg")
}
