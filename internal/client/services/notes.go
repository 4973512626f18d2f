package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/notesphere/cli/internal/client/api"
	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/client/state"
	"github.com/notesphere/cli/internal/common"
	"github.com/notesphere/cli/internal/filex"
	"github.com/notesphere/cli/internal/logging"
)

const (
	uploadBackoffBase = 1 * time.Second
	uploadMaxRetries  = 2 // retries after the first attempt: 3 attempts total
)

// uploadBackoff builds the retry schedule for note uploads: 1s then 2s
// between attempts. Package-level var so tests can substitute a recording
// or zero-delay backoff.
var uploadBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(uploadMaxRetries, retry.NewExponential(uploadBackoffBase))
}

// NoteDraft is the caller-supplied content of a new note. Files reference
// the user's original paths; the service stages copies before upload.
type NoteDraft struct {
	Title    string
	Subject  string
	Topics   []string
	Semester int
	Files    []api.UploadFile
}

// NoteService exposes the note operations and keeps the feed reconciled
// with their results.
type NoteService interface {
	// Refresh replaces the feed with the full listing. The correctness
	// fallback for any state the id-keyed updates cannot reach.
	Refresh(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Mine(ctx context.Context) error
	Get(ctx context.Context, id string) (*models.NoteDetails, error)
	Upload(ctx context.Context, draft NoteDraft) (*models.Note, error)
	Star(ctx context.Context, id string) (*models.Note, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, url string, w io.Writer) error
	Feed() *state.Feed
}

type noteService struct {
	client     api.Client
	feed       *state.Feed
	stagingDir string
	log        logging.Logger
}

func NewNoteService(client api.Client, feed *state.Feed, stagingDir string, log logging.Logger) NoteService {
	return &noteService{client: client, feed: feed, stagingDir: stagingDir, log: log}
}

func (s *noteService) Feed() *state.Feed {
	return s.feed
}

// loadInto runs one feed load under the generation protocol. A load
// already in flight makes this a no-op.
func (s *noteService) loadInto(ctx context.Context, fetch func(context.Context) ([]models.Note, error)) error {
	gen, ok := s.feed.BeginLoad()
	if !ok {
		return nil
	}

	notes, err := fetch(ctx)
	if err != nil {
		s.feed.FailLoad(gen, err.Error())
		return err
	}

	// The backend occasionally serves records with blank titles; skip them
	// the way the original client does.
	valid := notes[:0:0]
	for _, n := range notes {
		if n.Valid() {
			valid = append(valid, n)
		}
	}
	if len(valid) < len(notes) {
		s.log.Warn(ctx, "skipped invalid notes", "count", len(notes)-len(valid))
	}

	s.feed.CompleteLoad(gen, valid)
	return nil
}

func (s *noteService) Refresh(ctx context.Context) error {
	return s.loadInto(ctx, s.client.ListNotes)
}

func (s *noteService) Search(ctx context.Context, query string) error {
	return s.loadInto(ctx, func(ctx context.Context) ([]models.Note, error) {
		return s.client.SearchNotes(ctx, query)
	})
}

func (s *noteService) Mine(ctx context.Context) error {
	return s.loadInto(ctx, s.client.ListOwnNotes)
}

func (s *noteService) Get(ctx context.Context, id string) (*models.NoteDetails, error) {
	details, err := s.client.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if !details.Note.Valid() {
		return nil, fmt.Errorf("note %s has no title or subject", id)
	}
	return details, nil
}

// checkDraft enforces the upload preconditions locally, before staging or
// any network traffic.
func checkDraft(draft NoteDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if strings.TrimSpace(draft.Subject) == "" {
		return fmt.Errorf("%w: subject is required", common.ErrValidation)
	}
	topicOK := false
	for _, t := range draft.Topics {
		if strings.TrimSpace(t) != "" {
			topicOK = true
			break
		}
	}
	if !topicOK {
		return fmt.Errorf("%w: at least one topic is required", common.ErrValidation)
	}
	if len(draft.Files) > common.MaxUploadFiles {
		return fmt.Errorf("%w: %d files, limit is %d", common.ErrTooManyFiles, len(draft.Files), common.MaxUploadFiles)
	}
	for _, f := range draft.Files {
		size, err := filex.FileSize(f.Path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrValidation, f.Path, err)
		}
		if size > common.MaxUploadFileSize {
			return fmt.Errorf("%w: %s", common.ErrFileTooLarge, f.Path)
		}
	}
	return nil
}

// Upload validates the draft, stages the files, and sends the multipart
// request. Only transient network failures are retried (1s, 2s backoff, 3
// attempts total); client and server rejections surface immediately.
// Staged copies are removed whether the upload succeeds or fails.
func (s *noteService) Upload(ctx context.Context, draft NoteDraft) (*models.Note, error) {
	if err := checkDraft(draft); err != nil {
		return nil, err
	}

	dir, err := filex.EnsureDir(s.stagingDir)
	if err != nil {
		return nil, fmt.Errorf("staging dir: %w", err)
	}

	staged := make([]api.UploadFile, 0, len(draft.Files))
	stagedPaths := make([]string, 0, len(draft.Files))
	defer func() {
		if err := filex.Cleanup(stagedPaths); err != nil {
			s.log.Warn(ctx, "staged file cleanup failed", "err", err)
		}
	}()

	for _, f := range draft.Files {
		p, err := filex.Stage(f.Path, dir)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", f.Path, err)
		}
		stagedPaths = append(stagedPaths, p)
		staged = append(staged, api.UploadFile{Path: p, Description: f.Description})
	}

	form := api.NoteForm{
		Title:    strings.TrimSpace(draft.Title),
		Subject:  strings.TrimSpace(draft.Subject),
		Topics:   draft.Topics,
		Semester: draft.Semester,
		Files:    staged,
	}

	var note *models.Note
	err = retry.Do(ctx, uploadBackoff(), func(ctx context.Context) error {
		n, err := s.client.UploadNote(ctx, form)
		if err != nil {
			if api.IsTransient(err) {
				s.log.Warn(ctx, "upload attempt failed, will retry", "err", err)
				return retry.RetryableError(err)
			}
			return err
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.feed.Upsert(*note)
	s.log.Info(ctx, "note uploaded", "id", note.ID, "title", note.Title)
	return note, nil
}

// Star toggles the star server-side. The direction is the server's call;
// whatever note payload comes back is applied to the feed as-is.
func (s *noteService) Star(ctx context.Context, id string) (*models.Note, error) {
	updated, err := s.client.StarNote(ctx, id)
	if err != nil {
		return nil, err
	}
	s.feed.Replace(*updated)
	return updated, nil
}

// Delete removes the note. The feed entry goes away only after the server
// confirms.
func (s *noteService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.feed.Remove(id)
	s.log.Info(ctx, "note deleted", "id", id)
	return nil
}

func (s *noteService) Download(ctx context.Context, url string, w io.Writer) error {
	return s.client.DownloadFile(ctx, url, w)
}
