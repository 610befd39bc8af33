// Package auth holds the session commands: login, logout, whoami and profile.
package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/constants"
	"github.com/julianstephens/bujo/internal/keyring"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/models"
)

type LoginCmd struct {
	UserID string `name:"user-id" required:"" help:"Account id to sign in as."`
	Email  string `help:"Account email."`
	Name   string `help:"Display name stored on the profile."`
	Avatar string `help:"Avatar URL stored on the profile."`
	Print  bool   `help:"Print the session token instead of storing it in the keyring."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if ctx.Sessions == nil {
		return errors.New("session signing is not configured")
	}

	user := models.User{
		ID:    c.UserID,
		Email: c.Email,
		Metadata: models.UserMetadata{
			FullName:  c.Name,
			AvatarURL: c.Avatar,
		},
	}
	token, err := ctx.Sessions.Issue(user)
	if err != nil {
		return fmt.Errorf("failed to issue session: %w", err)
	}

	if c.Print {
		ctx.Printf("%s\n", token)
		return nil
	}

	if err := keyring.SetSessionToken(token); err != nil {
		return err
	}
	if _, err := ctx.Journal.EnsureProfile(ctx.Context()); err != nil {
		return err
	}

	logger.Info("Logged in", "user", user.ID)
	ctx.Printf("Logged in as %s\n", displayName(user))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteSessionToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("Not logged in.\n")
			return nil
		}
		return err
	}
	if os.Getenv(constants.EnvSessionToken) != "" {
		ctx.Printf("Logged out. Note: %s is still set.\n", constants.EnvSessionToken)
		return nil
	}
	ctx.Printf("Logged out.\n")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Journal.CurrentUser(ctx.Context())
	if err != nil {
		return err
	}

	ctx.Printf("ID:     %s\n", user.ID)
	if user.Email != "" {
		ctx.Printf("Email:  %s\n", user.Email)
	}
	if user.Metadata.FullName != "" {
		ctx.Printf("Name:   %s\n", user.Metadata.FullName)
	}
	if user.Metadata.AvatarURL != "" {
		ctx.Printf("Avatar: %s\n", user.Metadata.AvatarURL)
	}
	return nil
}

// ProfileCmd makes sure the profile row exists and shows it
type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Journal.EnsureProfile(ctx.Context())
	if err != nil {
		return err
	}

	ctx.Printf("Profile %s\n", p.ID)
	if p.FullName != nil {
		ctx.Printf("  Name:   %s\n", *p.FullName)
	}
	if p.AvatarURL != nil {
		ctx.Printf("  Avatar: %s\n", *p.AvatarURL)
	}
	return nil
}

func displayName(u models.User) string {
	if u.Metadata.FullName != "" {
		return fmt.Sprintf("%s (%s)", u.Metadata.FullName, u.ID)
	}
	return u.ID
}
