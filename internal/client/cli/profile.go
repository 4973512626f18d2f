package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/client/services"
	"github.com/notesphere/cli/internal/common"
)

// Profile shows a user profile; with no argument, the logged-in user's own.
func (a *App) Profile(ctx context.Context, args []string) error {
	var id string
	switch len(args) {
	case 0:
		u := a.auth.CurrentUser()
		if u == nil {
			return common.ErrUnauthenticated
		}
		id = u.ID
	case 1:
		id = args[0]
	default:
		return fmt.Errorf("usage: profile [id]")
	}

	user, err := a.profile.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printUser(user)
	return nil
}

func (a *App) printUser(u *models.User) {
	fmt.Fprintf(a.out, "%s <%s>\nCollege: %s\nStars: %d\n", u.Username, u.Email, u.College, u.Stars)
	if u.Role != "" {
		fmt.Fprintf(a.out, "Role: %s\n", u.Role)
	}
	if u.Semester != nil {
		fmt.Fprintf(a.out, "Semester: %d\n", *u.Semester)
	}
	if u.Bio != nil && *u.Bio != "" {
		fmt.Fprintf(a.out, "Bio: %s\n", *u.Bio)
	}
	if u.ProfilePhotoPath != nil && *u.ProfilePhotoPath != "" {
		fmt.Fprintf(a.out, "Photo: %s\n", *u.ProfilePhotoPath)
	}
}

// EditProfile collects changed fields and sends a partial update: fields
// left empty are not sent at all.
func (a *App) EditProfile(ctx context.Context) error {
	var upd services.ProfileUpdate

	if s, err := getSimpleText(a.reader, "New username (empty to keep)", a.out); err != nil {
		return err
	} else if s != "" {
		upd.Username = &s
	}
	if s, err := getSimpleText(a.reader, "New college (empty to keep)", a.out); err != nil {
		return err
	} else if s != "" {
		upd.College = &s
	}
	if s, err := getSimpleText(a.reader, "New bio (empty to keep)", a.out); err != nil {
		return err
	} else if s != "" {
		upd.Bio = &s
	}
	if s, err := getSimpleText(a.reader, "New semester (empty to keep)", a.out); err != nil {
		return err
	} else if s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		upd.Semester = &n
	}

	user, err := a.profile.Update(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	a.printUser(user)
	return nil
}

// Photo uploads a new profile photo.
func (a *App) Photo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: photo <path>")
	}

	path, err := a.profile.UploadPhoto(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Photo uploaded: %s\n", path)
	return nil
}
