package cli

import (
	"context"
	"fmt"

	"github.com/notesphere/cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register collects account fields and creates the account. It does not
// log the user in; chaining a login is the user's choice.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	college, err := getSimpleText(a.reader, "Enter college", a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (student/teacher, default student)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.auth.Register(ctx, username, email, password, role, college)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Account created, you can log in now"
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Login prompts for credentials and establishes a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Fprintf(a.out, "Welcome, %s!\n", user.Username)
	} else {
		fmt.Fprintln(a.out, "Logged in")
	}
	return nil
}

// Logout erases the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
