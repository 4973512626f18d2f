package api

import (
	"context"
	"io"

	"github.com/notesphere/cli/internal/client/models"
)

// TokenSource supplies the current bearer token, or "" when the session is
// anonymous or expired. The credential store implements it.
type TokenSource interface {
	CurrentToken() string
}

// UploadFile is one attachment in a note upload: a local (already staged)
// file path plus its user-supplied description.
type UploadFile struct {
	Path        string
	Description string
}

// NoteForm is the payload of a note upload.
type NoteForm struct {
	Title    string
	Subject  string
	Topics   []string
	Semester int
	Files    []UploadFile
}

// Client is the typed surface of the NoteSphere REST API. Every method maps
// to one endpoint; failures are *ClientError, *ServerError, *NetworkError,
// or common.ErrUnauthenticated for auth-required calls without a token.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)

	ListNotes(ctx context.Context) ([]models.Note, error)
	SearchNotes(ctx context.Context, query string) ([]models.Note, error)
	ListOwnNotes(ctx context.Context) ([]models.Note, error)
	GetNote(ctx context.Context, id string) (*models.NoteDetails, error)
	UploadNote(ctx context.Context, form NoteForm) (*models.Note, error)
	StarNote(ctx context.Context, id string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error

	GetProfile(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	UploadProfilePhoto(ctx context.Context, path string) (string, error)

	DownloadFile(ctx context.Context, url string, w io.Writer) error

	Close() error
}
