package services

import (
	"context"
	"fmt"

	"github.com/notesphere/cli/internal/client/api"
	"github.com/notesphere/cli/internal/client/credstore"
	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/common"
	"github.com/notesphere/cli/internal/logging"
)

// ProfileUpdate carries the fields the caller explicitly set. Nil fields
// are never sent, so the server leaves them untouched.
type ProfileUpdate struct {
	Username *string
	College  *string
	Bio      *string
	Semester *int
}

type ProfileService interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, upd ProfileUpdate) (*models.User, error)
	UploadPhoto(ctx context.Context, path string) (string, error)
}

type profileService struct {
	client api.Client
	store  *credstore.Store
	log    logging.Logger
}

func NewProfileService(client api.Client, store *credstore.Store, log logging.Logger) ProfileService {
	return &profileService{client: client, store: store, log: log}
}

func (p *profileService) Get(ctx context.Context, id string) (*models.User, error) {
	return p.client.GetProfile(ctx, id)
}

// Update sends the partial update and refreshes the cached user snapshot
// with the server's authoritative copy.
func (p *profileService) Update(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	if upd.Username == nil && upd.College == nil && upd.Bio == nil && upd.Semester == nil {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}
	if upd.Username != nil && *upd.Username == "" {
		return nil, fmt.Errorf("%w: username cannot be blank", common.ErrValidation)
	}

	user, err := p.client.UpdateProfile(ctx, models.UpdateProfileRequest{
		Username: upd.Username,
		College:  upd.College,
		Bio:      upd.Bio,
		Semester: upd.Semester,
	})
	if err != nil {
		return nil, err
	}

	if err := p.store.UpdateUser(user); err != nil {
		// The remote update already happened; a stale snapshot is not
		// worth failing the operation over.
		p.log.Warn(ctx, "could not refresh cached user", "err", err)
	}
	return user, nil
}

// UploadPhoto sends a new profile photo and patches the cached snapshot
// with the returned path.
func (p *profileService) UploadPhoto(ctx context.Context, path string) (string, error) {
	photoPath, err := p.client.UploadProfilePhoto(ctx, path)
	if err != nil {
		return "", err
	}

	if u := p.store.CurrentUser(); u != nil && photoPath != "" {
		u.ProfilePhotoPath = &photoPath
		if err := p.store.UpdateUser(u); err != nil {
			p.log.Warn(ctx, "could not refresh cached user", "err", err)
		}
	}
	return photoPath, nil
}
