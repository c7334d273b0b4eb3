package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/rating"
	"github.com/vietddude/jokecast/internal/ui"
	"github.com/vietddude/jokecast/internal/widget"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the widget in the terminal",
	Run:   runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

const playHelp = "[n]ext joke, score [1-3], [r]eports, [q]uit"

func runPlay(cmd *cobra.Command, args []string) {
	a := mustApp(setup())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	console := ui.NewConsole(out)
	session := widget.NewSession(a.jokes, a.weather, rating.NewTracker(), console)
	session.Start(ctx)

	if err := playLoop(ctx, cmd.InOrStdin(), out, console, session); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// playLoop reads commands until quit, EOF or cancellation.
func playLoop(ctx context.Context, in io.Reader, out io.Writer, console *ui.Console, session *widget.Session) error {
	fmt.Fprintln(out, playHelp)

	scanner := bufio.NewScanner(in)
	for ctx.Err() == nil && scanner.Scan() {
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch input {
		case "":
			continue
		case "n", "next":
			console.PressNext(ctx)
		case "r", "reports":
			printReports(out, session.Reports())
		case "q", "quit", "exit":
			return nil
		default:
			score, err := strconv.Atoi(input)
			if err != nil || !rating.ValidScore(score) {
				fmt.Fprintln(out, playHelp)
				continue
			}
			console.PressScore(score)
			fmt.Fprintf(out, "Score %d selected\n", score)
		}
	}
	return scanner.Err()
}

func printReports(out io.Writer, reports []domain.JokeReport) {
	if len(reports) == 0 {
		fmt.Fprintln(out, "No ratings yet")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tSCORE\tJOKE")
	for _, r := range reports {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", r.Date.Local().Format(time.DateTime), r.Score, r.Joke)
	}
	_ = w.Flush()
}
