package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloudzz/internal/config"
	"cloudzz/internal/models"
	"cloudzz/internal/observability"
	"cloudzz/internal/repository"
)

const (
	DefaultUploadDir       = "./uploads"
	DefaultUploadMaxSizeMB = 10
)

// Access decisions recorded per media request.
const (
	MediaDecisionOwner           = "owner"
	MediaDecisionPublic          = "public"
	MediaDecisionUnauthenticated = "unauthenticated"
	MediaDecisionForbidden       = "forbidden"
)

// imageContentTypes is the extension allow-list for stored and served files.
// Anything outside it is rejected on both paths.
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadInput carries one uploaded file.
type UploadInput struct {
	UserID   uint
	Filename string
	Content  []byte
}

// UploadedFile is one stored file, addressable through the images route.
type UploadedFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// MediaService stores uploaded images on disk under one directory per user
// and decides who may read them back.
type MediaService struct {
	userRepo       repository.UserRepository
	uploadDir      string
	maxUploadBytes int64
}

func NewMediaService(userRepo repository.UserRepository, cfg *config.Config) *MediaService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultUploadMaxSizeMB
	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.UploadMaxSizeMB > 0 {
			maxUploadSizeMB = cfg.UploadMaxSizeMB
		}
	}
	return &MediaService{
		userRepo:       userRepo,
		uploadDir:      uploadDir,
		maxUploadBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload stores the file under {uploadDir}/{userID}/ with a sanitized,
// timestamp-prefixed name. The prefix makes names collision-free and gives
// the listing its newest-first order.
func (s *MediaService) Upload(ctx context.Context, in UploadInput) (*UploadedFile, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}

	detected := http.DetectContentType(in.Content)
	if !allowedImageMIME(detected) {
		return nil, models.NewValidationError("Invalid image type")
	}

	sanitized := unsafeFilenameChars.ReplaceAllString(filepath.Base(in.Filename), "_")
	if _, ok := imageContentTypes[strings.ToLower(filepath.Ext(sanitized))]; !ok {
		return nil, models.NewValidationError("Invalid file type")
	}
	stored := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitized)

	dir := filepath.Join(s.uploadDir, strconv.FormatUint(uint64(in.UserID), 10))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(dir, stored), in.Content, 0o600); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.UploadsTotal.Inc()
	return &UploadedFile{
		Filename: stored,
		URL:      s.imageURL(in.UserID, stored),
	}, nil
}

// ListUploads returns the user's stored images, newest first. Order comes
// from the timestamp prefix on the stored name, not file mtimes, so it
// survives copies and restores.
func (s *MediaService) ListUploads(ctx context.Context, userID uint) ([]UploadedFile, error) {
	dir := filepath.Join(s.uploadDir, strconv.FormatUint(uint64(userID), 10))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []UploadedFile{}, nil
		}
		return nil, models.NewInternalError(err)
	}

	files := make([]UploadedFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := imageContentTypes[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		files = append(files, UploadedFile{
			Filename: e.Name(),
			URL:      s.imageURL(userID, e.Name()),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return uploadTimestamp(files[i].Filename) > uploadTimestamp(files[j].Filename)
	})
	return files, nil
}

// Resolve validates the requested name and locates the file on disk,
// returning its absolute path and content type. Validation failures and
// missing files are reported before any access decision is made.
func (s *MediaService) Resolve(ownerID uint, filename string) (string, string, error) {
	if filename == "" || strings.Contains(filename, "..") ||
		strings.HasPrefix(filename, "/") || strings.HasPrefix(filename, "\\") {
		return "", "", models.NewValidationError("Invalid filename")
	}
	contentType, ok := imageContentTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", "", models.NewValidationError("Invalid file type")
	}

	fullPath := filepath.Join(s.uploadDir, strconv.FormatUint(uint64(ownerID), 10), filename)
	// #nosec G304: filename was rejected above if it tried to escape the dir
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return "", "", models.NewNotFoundError("Image", filename)
	}
	return fullPath, contentType, nil
}

// Authorize decides whether the requester may read the owner's file. Owners
// read their own files; anyone may read a file the owner exposes as their
// avatar or banner; everyone else is refused, with the anonymous case kept
// distinct so clients can prompt for login.
func (s *MediaService) Authorize(ctx context.Context, requesterID uint, authenticated bool, ownerID uint, filename string) (string, error) {
	if authenticated && requesterID == ownerID {
		return MediaDecisionOwner, nil
	}

	publicURL := s.imageURL(ownerID, filename)
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err == nil && (owner.AvatarURL == publicURL || owner.BannerURL == publicURL) {
		return MediaDecisionPublic, nil
	}

	if !authenticated {
		return MediaDecisionUnauthenticated, models.NewUnauthorizedError("Authentication required")
	}
	return MediaDecisionForbidden, models.NewForbiddenError("Access denied")
}

func (s *MediaService) imageURL(userID uint, filename string) string {
	return fmt.Sprintf("/api/images/%d/%s", userID, filename)
}

func allowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// uploadTimestamp parses the numeric prefix a stored name starts with.
// Names without one (files dropped into the dir by hand) sort last.
func uploadTimestamp(name string) int64 {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0
	}
	ts, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
