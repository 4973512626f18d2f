package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/common"
)

// checkUploadFiles enforces the local preconditions on attachment sets:
// at most MaxUploadFiles files, each at most MaxUploadFileSize bytes.
// It fails before a single byte is sent.
func checkUploadFiles(paths []string) error {
	if len(paths) > common.MaxUploadFiles {
		return fmt.Errorf("%w: %d files, limit is %d", common.ErrTooManyFiles, len(paths), common.MaxUploadFiles)
	}
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrValidation, p, err)
		}
		if fi.Size() > common.MaxUploadFileSize {
			return fmt.Errorf("%w: %s", common.ErrFileTooLarge, filepath.Base(p))
		}
	}
	return nil
}

// doMultipart streams a multipart form to path. Files are piped straight
// from disk into the request body; the whole file is never held in memory.
// All multipart endpoints require authentication.
func (c *HTTPClient) doMultipart(ctx context.Context, path string, fields [][2]string, fileField string, files []string, out any) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			for _, f := range fields {
				if err := mw.WriteField(f[0], f[1]); err != nil {
					return err
				}
			}
			for _, p := range files {
				part, err := mw.CreateFormFile(fileField, filepath.Base(p))
				if err != nil {
					return err
				}
				src, err := os.Open(p)
				if err != nil {
					return err
				}
				_, err = io.Copy(part, src)
				src.Close()
				if err != nil {
					return err
				}
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, pr)
	if err != nil {
		pr.Close()
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := c.authorize(req, true); err != nil {
		// unblock the writer goroutine
		pr.Close()
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// UploadNote sends a note with its attachments. Topics and per-file
// descriptions travel as comma-joined form fields, the wire format the
// backend expects.
func (c *HTTPClient) UploadNote(ctx context.Context, form NoteForm) (*models.Note, error) {
	paths := make([]string, 0, len(form.Files))
	descriptions := make([]string, 0, len(form.Files))
	for _, f := range form.Files {
		paths = append(paths, f.Path)
		descriptions = append(descriptions, f.Description)
	}

	if err := checkUploadFiles(paths); err != nil {
		return nil, err
	}

	fields := [][2]string{
		{"title", form.Title},
		{"subject", form.Subject},
		{"topics", strings.Join(form.Topics, ",")},
		{"descriptions", strings.Join(descriptions, ",")},
		{"semester", strconv.Itoa(form.Semester)},
	}

	var note models.Note
	if err := c.doMultipart(ctx, "/api/notes", fields, "files", paths, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UploadProfilePhoto sends a new profile photo and returns its server path.
func (c *HTTPClient) UploadProfilePhoto(ctx context.Context, path string) (string, error) {
	if err := checkUploadFiles([]string{path}); err != nil {
		return "", err
	}

	var resp models.ProfilePhotoResponse
	if err := c.doMultipart(ctx, "/api/users/upload-profile-photo", nil, "photo", []string{path}, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "photo upload failed"
		}
		return "", &ClientError{Code: http.StatusOK, Message: msg}
	}
	if resp.ProfilePhotoPath == nil {
		return "", nil
	}
	return *resp.ProfilePhotoPath, nil
}
