package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/notesphere/cli/internal/client/api"
	"github.com/notesphere/cli/internal/client/services"
	"github.com/notesphere/cli/internal/client/state"
)

// List prints the current feed projection, loading it first when the feed
// has never been filled.
func (a *App) List(ctx context.Context) error {
	if status, _ := a.notes.Feed().Status(); status == state.StatusIdle {
		if err := a.notes.Refresh(ctx); err != nil {
			return err
		}
	}
	return a.printFeed()
}

// Refresh reloads the feed from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.notes.Refresh(ctx); err != nil {
		return err
	}
	return a.printFeed()
}

func (a *App) Search(ctx context.Context, query string) error {
	if query == "" {
		return fmt.Errorf("usage: search <query>")
	}
	if err := a.notes.Search(ctx, query); err != nil {
		return err
	}
	return a.printFeed()
}

func (a *App) Mine(ctx context.Context) error {
	if err := a.notes.Mine(ctx); err != nil {
		return err
	}
	return a.printFeed()
}

func (a *App) printFeed() error {
	notes := a.notes.Feed().Visible()
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return nil
	}

	var userID string
	if u := a.auth.CurrentUser(); u != nil {
		userID = u.ID
	}

	for _, n := range notes {
		star := " "
		if n.IsStarredBy(userID) {
			star = "*"
		}
		fmt.Fprintf(a.out, "%s %-24s  %-16s  sem %d  %d stars  by %s  [%s]\n",
			star, n.Title, n.Subject, n.Semester, n.Stars, n.User.Username, n.ID)
	}
	return nil
}

// Show prints one note's details with its index-aligned attachment links.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}

	details, err := a.notes.Get(ctx, args[0])
	if err != nil {
		return err
	}

	n := details.Note
	fmt.Fprintf(a.out, "%s\nSubject: %s\nSemester: %d\nTopics: %v\nStars: %d\nBy: %s (%s)\nCreated: %s\n",
		n.Title, n.Subject, n.Semester, n.Topics, n.Stars, n.User.Username, n.User.College,
		n.CreatedAt.Format("2006-01-02 15:04"))

	for i, att := range n.Attachments {
		fmt.Fprintf(a.out, "  [%d] %s — %s\n", i, filepath.Base(att.Path), att.Description)
		if i < len(details.DownloadURLs) {
			fmt.Fprintf(a.out, "      download: %s\n", details.DownloadURLs[i])
		}
		if i < len(details.ViewURLs) {
			fmt.Fprintf(a.out, "      view:     %s\n", details.ViewURLs[i])
		}
	}
	return nil
}

// AddNote collects a draft interactively and uploads it.
func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	subject, err := getSimpleText(a.reader, "Enter subject", a.out)
	if err != nil {
		return err
	}
	topics, err := GetCommaList(a.reader, "Enter topics (comma-separated)", a.out)
	if err != nil {
		return err
	}
	semester, err := GetInt(a.reader, "Enter semester", a.out)
	if err != nil {
		return err
	}

	var files []api.UploadFile
	for {
		path, err := getSimpleText(a.reader, "Enter file path (empty line to finish)", a.out)
		if err != nil {
			return err
		}
		if path == "" {
			break
		}
		desc, err := getSimpleText(a.reader, "Enter file description", a.out)
		if err != nil {
			return err
		}
		files = append(files, api.UploadFile{Path: path, Description: desc})
	}

	note, err := a.notes.Upload(ctx, services.NoteDraft{
		Title:    title,
		Subject:  subject,
		Topics:   topics,
		Semester: semester,
		Files:    files,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %q [%s]\n", note.Title, note.ID)
	return nil
}

// Star toggles the star on a note; the printed state reflects the server's
// answer, not an assumed direction.
func (a *App) Star(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: star <id>")
	}

	updated, err := a.notes.Star(ctx, args[0])
	if err != nil {
		return err
	}

	var userID string
	if u := a.auth.CurrentUser(); u != nil {
		userID = u.ID
	}
	if updated.IsStarredBy(userID) {
		fmt.Fprintf(a.out, "Starred %q (%d stars)\n", updated.Title, updated.Stars)
	} else {
		fmt.Fprintf(a.out, "Unstarred %q (%d stars)\n", updated.Title, updated.Stars)
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	if err := a.notes.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// Download fetches attachment n of a note into the current directory (or
// the given destination path).
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: download <id> <n> [dest]")
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("not an attachment index: %q", args[1])
	}

	details, err := a.notes.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(details.DownloadURLs) {
		return fmt.Errorf("attachment index out of range (note has %d)", len(details.DownloadURLs))
	}

	dest := ""
	if len(args) == 3 {
		dest = args[2]
	} else if idx < len(details.Note.Attachments) {
		dest = filepath.Base(details.Note.Attachments[idx].Path)
	}
	if dest == "" {
		dest = "attachment-" + args[1]
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if err := a.notes.Download(ctx, details.DownloadURLs[idx], f); err != nil {
		f.Close()
		_ = os.Remove(dest)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", dest)
	return nil
}

// Sort changes the feed projection ordering and reprints it.
func (a *App) Sort(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: sort <title|created|stars> [asc|desc]")
	}

	var field state.SortField
	switch args[0] {
	case "title":
		field = state.SortByTitle
	case "created":
		field = state.SortByCreated
	case "stars":
		field = state.SortByStars
	default:
		return fmt.Errorf("unknown sort field: %q", args[0])
	}

	asc := field == state.SortByTitle
	if len(args) == 2 {
		switch args[1] {
		case "asc":
			asc = true
		case "desc":
			asc = false
		default:
			return fmt.Errorf("unknown direction: %q", args[1])
		}
	}

	a.notes.Feed().SetSort(field, asc)
	return a.printFeed()
}
