package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/format"
	"github.com/ahaampo5/blog/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the blog backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		username, password, err := promptCredentials(cmd)
		if err != nil {
			return err
		}

		resp, err := e.client.Login(cmd.Context(), blog.LoginRequest{
			Username: username,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		output.Success(cmd.OutOrStdout(), "signed in as %s", resp.User.Username)
		if exp, ok := e.store.Expiry(); ok {
			output.Dim(cmd.OutOrStdout(), "session expires %s", format.DateTime(exp))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		e.client.Logout()
		output.Success(cmd.OutOrStdout(), "signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		if !e.store.IsAuthenticated() {
			output.Dim(cmd.OutOrStdout(), "not signed in")
			return nil
		}

		// Prefer the backend's view of the session; fall back to
		// the stored record when offline.
		user, err := e.client.Me(cmd.Context())
		if err != nil {
			stored, ok := e.store.User()
			if !ok {
				return fmt.Errorf("fetching current user: %w", err)
			}
			user = stored
			output.Dim(cmd.OutOrStdout(), "(backend unreachable, showing stored session)")
		}

		role := "user"
		if user.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Username, user.Email, role)
		if exp, ok := e.store.Expiry(); ok {
			output.Dim(cmd.OutOrStdout(), "session expires %s", format.DateTime(exp))
		}
		return nil
	},
}

func promptCredentials(cmd *cobra.Command) (string, string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Username: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)
	if !format.ValidUsername(username) {
		return "", "", fmt.Errorf("invalid username")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	var password string
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", "", fmt.Errorf("password must not be empty")
	}

	return username, password, nil
}
