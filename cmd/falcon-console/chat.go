package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/falconrcm/console/internal/domain/agent"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the AI billing assistant",
		Long: `Interactive chat with the AI billing assistant. The session id is kept
for the duration of the REPL so the assistant retains context. Type
"exit" or press Ctrl-D to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			if st, err := a.agent.Status(cmd.Context()); err != nil || !st.Available {
				return fmt.Errorf("the AI assistant is currently unavailable")
			}

			a.ui.SetChatOpen(true)
			defer a.ui.SetChatOpen(false)

			fmt.Println("Falcon billing assistant. Type \"exit\" to leave.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				req := agent.ChatRequest{Message: line}
				if sid := a.ui.Flags().CurrentChatSession; sid != "" {
					req.SessionID = &sid
				}
				resp, err := a.agent.Chat(cmd.Context(), req)
				if err != nil {
					continue
				}
				a.ui.SetCurrentChatSession(resp.SessionID)
				fmt.Println(resp.Response)
			}
			fmt.Println()
			return scanner.Err()
		},
	}
	return cmd
}
