package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/falconrcm/console/internal/platform/mockapi"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check API and AI agent availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if err := a.gw.Health(cmd.Context()); err != nil {
				fmt.Printf("API:   unreachable (%s)\n", a.cfg.APIBaseURL)
				return err
			}
			fmt.Printf("API:   ok (%s)\n", a.cfg.APIBaseURL)

			if err := a.requireAuth(cmd.Context()); err != nil {
				fmt.Println("Agent: unknown (not signed in)")
				return nil
			}
			st, err := a.agent.Status(cmd.Context())
			switch {
			case err != nil:
				fmt.Println("Agent: unreachable")
			case st.Available:
				model := ""
				if st.Model != nil {
					model = " (" + *st.Model + ")"
				}
				fmt.Printf("Agent: available%s\n", model)
			default:
				fmt.Println("Agent: unavailable")
			}
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.gw.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func mockAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Run an in-memory Falcon API for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			port, _ := cmd.Flags().GetString("port")
			if port == "" {
				port = a.cfg.MockAPIPort
			}

			srv := mockapi.New(a.logger)
			go func() {
				sig := make(chan os.Signal, 1)
				signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
				<-sig
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()

			fmt.Printf("Mock Falcon API on :%s (sign in with %s / %s)\n", port, mockapi.Email, mockapi.Password)
			if err := srv.Start(":" + port); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("port", "", "Listen port (defaults to MOCK_API_PORT)")
	return cmd
}
