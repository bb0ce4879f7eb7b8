package handlers

import (
	"errors"
	"mime"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/talentdesk/ats-service/internal/storage"
	apperrors "github.com/talentdesk/ats-service/pkg/util/errorutil"
)

// ResumeFiles opens stored resumes for download.
type ResumeFiles interface {
	Load(name string) (*os.File, error)
}

// FilesHandler serves stored resumes.
type FilesHandler struct {
	files ResumeFiles
}

// NewFilesHandler constructs handler.
func NewFilesHandler(files ResumeFiles) *FilesHandler {
	return &FilesHandler{files: files}
}

// Download GET /api/files/download/:fileName.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	name := c.Params("fileName")
	f, err := h.files.Load(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFound("file", map[string]any{"fileName": name})
		}
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	c.Set(fiber.HeaderContentType, storage.ContentType(name))
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": name}))
	// fasthttp closes the file once the body is written.
	return c.SendStream(f, int(info.Size()))
}
