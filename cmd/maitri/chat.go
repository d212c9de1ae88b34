package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/easeaico/maitri/internal/lexicon"
	"github.com/easeaico/maitri/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to a persona from the terminal",
	Long: `Starts an interactive session. Type a message and press enter.

In-session commands:
  /persona <key>   switch persona
  /personas        list personas
  /report          show the crisis report for this astronaut
  /quit            leave`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("astronaut", "ASTRO001", "astronaut id")
	chatCmd.Flags().String("persona", lexicon.DefaultPersona, "persona key")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	astronautID, _ := cmd.Flags().GetString("astronaut")
	persona, _ := cmd.Flags().GetString("persona")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := wireEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "maitri - talking to %s as %s. /quit to leave.\n", astronautID, persona)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "\nyou> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := chatCommand(ctx, out, d, astronautID, &persona, line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		envelope, err := d.orchestrator.GenerateResponse(ctx, astronautID, persona, line, nil)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		printEnvelope(out, envelope)
	}
}

// chatCommand handles a slash command and reports whether the session should end.
func chatCommand(ctx context.Context, out io.Writer, d *deps, astronautID string, persona *string, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/personas":
		fmt.Fprintln(out, strings.Join(lexicon.PersonaKeys(), ", "))
	case "/persona":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /persona <key>")
		}
		if !lexicon.HasPersona(fields[1]) {
			return false, fmt.Errorf("unknown persona %q", fields[1])
		}
		*persona = fields[1]
		fmt.Fprintf(out, "now talking to your %s\n", *persona)
	case "/report":
		rep, err := d.reporter.CrisisReport(ctx, astronautID)
		if err != nil {
			return false, err
		}
		raw, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, string(raw))
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}

func printEnvelope(out io.Writer, env *types.ResponseEnvelope) {
	fmt.Fprintf(out, "%s> %s\n", env.PersonaUsed, env.Response)

	var feelings []string
	for e, v := range env.EmotionalState {
		if v > 0 {
			feelings = append(feelings, fmt.Sprintf("%s=%.0f", e, v))
		}
	}
	sort.Strings(feelings)
	if len(feelings) > 0 {
		fmt.Fprintf(out, "   [%s | %s]\n", env.LanguageDetected, strings.Join(feelings, " "))
	}
	if env.IsCrisis {
		fmt.Fprintf(out, "   CRISIS: %s\n", env.CrisisSummary)
	}
	if env.Degraded {
		fmt.Fprintf(out, "   (fallback reply, %s)\n", env.ErrorKind)
	}
}
