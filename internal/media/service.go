package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

// MaxUploadBytes caps a single upload at 10MB.
const MaxUploadBytes = 10 << 20

var (
	ErrMimeNotAllowed = errors.New("media: file type not allowed")
	ErrFileTooLarge   = fmt.Errorf("media: file exceeds %d bytes", MaxUploadBytes)
	ErrEmptyUpload    = errors.New("media: empty upload")
)

// allowedMimeTypes is the upload allow-list: images, PDF, Office
// documents, and short video.
var allowedMimeTypes = func() map[string]struct{} {
	types := []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/svg+xml",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"video/mp4",
		"video/webm",
	}
	out := make(map[string]struct{}, len(types))
	for _, t := range types {
		out[t] = struct{}{}
	}
	return out
}()

// UploadInput describes one incoming file.
type UploadInput struct {
	OriginalName string
	MimeType     string
	Reader       io.Reader
	UploadedBy   *int64
}

// Service stores upload contents and tracks them in the media library.
type Service struct {
	Files   *crud.Service[*MediaFile]
	store   FileStore
	baseURL string
	log     logging.Logger
}

func NewService(repo crud.Repository[*MediaFile], store FileStore, baseURL string, log logging.Logger) *Service {
	return &Service{
		Files:   crud.NewService(repo, "media file", Handlers(), crud.WithLogger[*MediaFile](log)),
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
	}
}

func NewBunService(db *bun.DB, store FileStore, baseURL string, log logging.Logger) *Service {
	return NewService(crud.NewBunRepository(db, "media file", Handlers()), store, baseURL, log)
}

// Upload checks the MIME allow-list and size cap, writes the contents
// under a generated name, and records the file. The row is removed again
// if the write succeeded but the insert did not.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*MediaFile, error) {
	mimeType := normalizeMime(in.MimeType)
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return nil, crud.WrapValidationError(fmt.Errorf("%w: %s", ErrMimeNotAllowed, mimeType))
	}

	storedName, err := s.storedName(in.OriginalName)
	if err != nil {
		return nil, err
	}

	// read one byte past the cap so oversized uploads are detected
	// without buffering the whole stream
	written, err := s.store.Save(storedName, io.LimitReader(in.Reader, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if written == 0 {
		s.removeContents(storedName)
		return nil, crud.WrapValidationError(ErrEmptyUpload)
	}
	if written > MaxUploadBytes {
		s.removeContents(storedName)
		return nil, crud.WrapValidationError(ErrFileTooLarge)
	}

	file, err := s.Files.Create(ctx, &MediaFile{
		OriginalName: in.OriginalName,
		StoredName:   storedName,
		MimeType:     mimeType,
		SizeBytes:    written,
		URL:          s.baseURL + "/" + storedName,
		UploadedBy:   in.UploadedBy,
	})
	if err != nil {
		s.removeContents(storedName)
		return nil, err
	}
	return file, nil
}

// Delete removes the library record; the stored contents are cleaned up
// best-effort so a missing file never blocks the delete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	file, err := s.Files.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Files.Delete(ctx, id); err != nil {
		return err
	}
	s.removeContents(file.StoredName)
	return nil
}

func (s *Service) removeContents(storedName string) {
	if err := s.store.Remove(storedName); err != nil {
		s.log.Warn("stored file cleanup failed", "file", storedName, "error", err)
	}
}

// storedName builds a unique on-disk name keeping the original
// extension when it agrees with a sane charset.
func (s *Service) storedName(originalName string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(originalName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return id.String() + ext, nil
}

func normalizeMime(value string) string {
	parsed, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return parsed
}
