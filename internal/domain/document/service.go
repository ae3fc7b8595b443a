package document

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024 // 5 MiB

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// ProfileDirectory resolves whether the caller holds a professional profile
// and flips its documents flag after a successful upload.
type ProfileDirectory interface {
	ProfessionalIDByUser(ctx context.Context, userID string) (string, error)
	MarkDocumentsUploaded(ctx context.Context, userID string) error
}

// Service stores verification documents on local disk under a per-user
// directory. The user-id path prefix is the ownership boundary.
type Service struct {
	repo     Repository
	profiles ProfileDirectory
	baseDir  string
}

func NewService(repo Repository, profiles ProfileDirectory, baseDir string) *Service {
	return &Service{repo: repo, profiles: profiles, baseDir: baseDir}
}

// Upload validates and saves one document for the calling professional.
// Size and content type are checked before anything touches disk.
func (s *Service) Upload(ctx context.Context, userID string, fileHeader *multipart.FileHeader, displayName string) (*Document, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	professionalID, err := s.profiles.ProfessionalIDByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if professionalID == "" {
		return nil, ErrNoProfessional
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	// Sniff the real content type; the client-declared header is not trusted.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	contentType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !allowedContentTypes[contentType] {
		return nil, ErrInvalidContentType
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	userDir := filepath.Join(s.baseDir, userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return nil, fmt.Errorf("create document directory: %w", err)
	}

	now := time.Now()
	filename := fmt.Sprintf("%d-%s%s", now.UnixNano(), uuid.New().String()[:8], extFor(contentType))
	relPath := userID + "/" + filename

	absPath := filepath.Join(userDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create document file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("write document: %w", err)
	}

	name := displayName
	if name == "" {
		name = fileHeader.Filename
	}
	d := &Document{
		ID:           uuid.New().String(),
		UserID:       userID,
		OriginalName: name,
		FilePath:     relPath,
		ContentType:  contentType,
		Size:         fileHeader.Size,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("save document record: %w", err)
	}

	if err := s.profiles.MarkDocumentsUploaded(ctx, userID); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a stored document. The path must sit under the caller's own
// user-id segment; nothing is touched otherwise.
func (s *Service) Delete(ctx context.Context, userID, path string) error {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if !strings.HasPrefix(cleaned, userID+"/") {
		return ErrNotOwner
	}

	if _, err := s.repo.GetByPath(ctx, cleaned); err != nil {
		return err
	}

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(cleaned))
	_ = os.Remove(absPath) // file may already be gone

	return s.repo.DeleteByPath(ctx, cleaned)
}

// ListMine returns the caller's documents, newest first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]*Document, error) {
	return s.repo.ListByUser(ctx, userID)
}

func extFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	return ".bin"
}
