package services

import (
	"context"
	"io"

	"github.com/notesphere/cli/internal/client/api"
	"github.com/notesphere/cli/internal/client/models"
)

// fakeClient implements api.Client for the service tests, recording the
// last arguments of every call and returning scripted results.
type fakeClient struct {
	RegisterMsg      string
	RegisterErr      error
	RegisterCalls    int
	LastRegisterReq  models.RegisterRequest

	LoginResp    *models.LoginResponse
	LoginErr     error
	LoginCalls   int
	LastLoginReq models.LoginRequest

	Notes       []models.Note
	ListErr     error
	ListCalls   int
	OwnCalls    int
	SearchCalls int
	LastQuery   string

	Details   *models.NoteDetails
	GetErr    error
	LastGetID string

	UploadResp  *models.Note
	UploadErrs  []error // one per attempt; nil means success
	UploadCalls int
	LastForm    api.NoteForm

	StarResp   *models.Note
	StarErr    error
	LastStarID string

	DeleteErr    error
	DeleteCalls  int
	LastDeleteID string

	Profile       *models.User
	ProfileErr    error
	LastProfileID string

	UpdateResp    *models.User
	UpdateErr     error
	LastUpdateReq models.UpdateProfileRequest

	PhotoPath     string
	PhotoErr      error
	LastPhotoPath string

	DownloadBody    string
	DownloadErr     error
	LastDownloadURL string
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (string, error) {
	f.RegisterCalls++
	f.LastRegisterReq = req
	return f.RegisterMsg, f.RegisterErr
}

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.LoginCalls++
	f.LastLoginReq = req
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) ListNotes(_ context.Context) ([]models.Note, error) {
	f.ListCalls++
	return f.Notes, f.ListErr
}

func (f *fakeClient) SearchNotes(_ context.Context, query string) ([]models.Note, error) {
	f.SearchCalls++
	f.LastQuery = query
	return f.Notes, f.ListErr
}

func (f *fakeClient) ListOwnNotes(_ context.Context) ([]models.Note, error) {
	f.OwnCalls++
	return f.Notes, f.ListErr
}

func (f *fakeClient) GetNote(_ context.Context, id string) (*models.NoteDetails, error) {
	f.LastGetID = id
	return f.Details, f.GetErr
}

func (f *fakeClient) UploadNote(_ context.Context, form api.NoteForm) (*models.Note, error) {
	attempt := f.UploadCalls
	f.UploadCalls++
	f.LastForm = form
	if attempt < len(f.UploadErrs) && f.UploadErrs[attempt] != nil {
		return nil, f.UploadErrs[attempt]
	}
	return f.UploadResp, nil
}

func (f *fakeClient) StarNote(_ context.Context, id string) (*models.Note, error) {
	f.LastStarID = id
	return f.StarResp, f.StarErr
}

func (f *fakeClient) DeleteNote(_ context.Context, id string) error {
	f.DeleteCalls++
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) GetProfile(_ context.Context, id string) (*models.User, error) {
	f.LastProfileID = id
	return f.Profile, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	f.LastUpdateReq = req
	return f.UpdateResp, f.UpdateErr
}

func (f *fakeClient) UploadProfilePhoto(_ context.Context, path string) (string, error) {
	f.LastPhotoPath = path
	return f.PhotoPath, f.PhotoErr
}

func (f *fakeClient) DownloadFile(_ context.Context, url string, w io.Writer) error {
	f.LastDownloadURL = url
	if f.DownloadErr != nil {
		return f.DownloadErr
	}
	_, err := w.Write([]byte(f.DownloadBody))
	return err
}

func (f *fakeClient) Close() error { return nil }
