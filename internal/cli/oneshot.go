package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/jokecast/internal/joke"
	"github.com/vietddude/jokecast/internal/ui"
	"github.com/vietddude/jokecast/internal/weather"
)

var jokeCmd = &cobra.Command{
	Use:   "joke",
	Short: "Print one joke and exit",
	Run:   runJoke,
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Print the current weather and exit",
	Run:   runWeather,
}

func init() {
	rootCmd.AddCommand(jokeCmd)
	rootCmd.AddCommand(weatherCmd)
}

func runJoke(cmd *cobra.Command, args []string) {
	a := mustApp(setup())

	text, err := a.jokes.FetchJoke(context.Background())
	if err != nil {
		slog.Debug("Joke fetch failed", "error", err)
		fmt.Fprintln(os.Stderr, joke.Message(err))
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
}

func runWeather(cmd *cobra.Command, args []string) {
	a := mustApp(setup())

	snap, err := a.weather.LoadWeather(context.Background())
	if err != nil {
		slog.Debug("Weather load failed", "error", err)
		fmt.Fprintln(os.Stderr, weather.ErrorMessage(err))
		os.Exit(1)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.PlainText(weather.Render(snap)))
	fmt.Fprintf(out, "Humidity %d%%, wind %d km/h\n", snap.Humidity, snap.WindSpeed)
}
