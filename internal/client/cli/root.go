package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

const helpText = `Commands:
  register                create an account
  login                   log in
  logout                  log out and erase the local session
  list                    show the note feed
  refresh                 reload the feed from the server
  search <query>          search notes
  mine                    show your own notes
  show <id>               show one note with its attachment links
  add                     upload a new note
  star <id>               star or unstar a note
  delete <id>             delete one of your notes
  download <id> <n> [to]  download attachment n of a note
  sort <title|created|stars> [asc|desc]
  profile [id]            show a profile (default: yours)
  edit                    update your profile
  photo <path>            upload a profile photo
  help                    this text
  exit                    quit`

// Run starts the interactive loop. It returns when the user exits or the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	rl, err := readline.New("ns> ")
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(a.out, "Welcome to NoteSphere CLI (type 'help' for commands)")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rl.SetPrompt(fmt.Sprintf("ns %s> ", a.status()))
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return nil
		}
		a.dispatch(ctx, cmd, args)
	}
}

// dispatch runs one command, printing errors instead of propagating them:
// a failed command never kills the session.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, helpText)
	case "register":
		err = a.Register(ctx)
	case "login":
		err = a.Login(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "list":
		err = a.List(ctx)
	case "refresh":
		err = a.Refresh(ctx)
	case "search":
		err = a.Search(ctx, strings.Join(args, " "))
	case "mine":
		err = a.Mine(ctx)
	case "show":
		err = a.Show(ctx, args)
	case "add":
		err = a.AddNote(ctx)
	case "star":
		err = a.Star(ctx, args)
	case "delete":
		err = a.Delete(ctx, args)
	case "download":
		err = a.Download(ctx, args)
	case "sort":
		err = a.Sort(args)
	case "profile":
		err = a.Profile(ctx, args)
	case "edit":
		err = a.EditProfile(ctx)
	case "photo":
		err = a.Photo(ctx, args)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
}
