package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Falcon API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				fmt.Print("Email: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}

			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				fmt.Print("Password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return err
				}
				password = string(raw)
			}

			if err := a.session.Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("%s", a.session.Error())
			}
			u := a.session.CurrentUser()
			fmt.Printf("Signed in as %s (%s)\n", u.Name, u.Role)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email (prompted when omitted)")
	cmd.Flags().String("password", "", "Account password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			// Restore the persisted token so the server-side invalidation
			// has something to revoke; a failed restore still logs out.
			_ = a.session.CheckAuth(cmd.Context())
			a.session.Logout(cmd.Context())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			u := a.session.CurrentUser()
			fmt.Printf("User:  %s <%s>\n", u.Name, u.Email)
			fmt.Printf("Role:  %s\n", u.Role)
			if claims, err := a.session.Claims(); err == nil && !claims.ExpiresAt.IsZero() {
				fmt.Printf("Token: expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	}
}
