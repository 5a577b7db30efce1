// Command carousel displays rotating reviews fetched from the review
// endpoint and submits new ones.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/utafrali/reviewcarousel/internal/app"
	"github.com/utafrali/reviewcarousel/internal/config"
	"github.com/utafrali/reviewcarousel/pkg/logger"
)

var (
	endpoint    string
	interactive bool

	submitName   string
	submitReview string
	submitRating int
	submitImage  string
)

var rootCmd = &cobra.Command{
	Use:   "carousel",
	Short: "Rotating review carousel",
	Long: `Fetches reviews from the review endpoint and shows them as a rotating
carousel on the terminal. Configuration comes from the environment
(REVIEWS_ENDPOINT, CAROUSEL_VISIBLE_COUNT, CAROUSEL_ROTATION_INTERVAL, ...).`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the carousel until interrupted",
	Long: `Loads the reviews and rotates them on a timer.

With --interactive, commands are read from stdin:
  next, prev, reload, name, review, rate, image, submit, quit`,
	RunE: runCarousel,
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Upload a single review",
	RunE:  runSubmit,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "reviews endpoint URL (overrides REVIEWS_ENDPOINT)")

	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read commands from stdin")

	submitCmd.Flags().StringVar(&submitName, "name", "", "reviewer name")
	submitCmd.Flags().StringVar(&submitReview, "review", "", "review text")
	submitCmd.Flags().IntVar(&submitRating, "rating", 0, "star rating (1-5)")
	submitCmd.Flags().StringVar(&submitImage, "image", "", "path to an image file")

	rootCmd.AddCommand(runCmd, submitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCarouselApp(out io.Writer) (*app.CarouselApp, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if endpoint != "" {
		cfg.ReviewsEndpoint = endpoint
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	// Logs go to stderr so they do not interleave with the carousel.
	log := logger.NewWithWriter("review-carousel", cfg.LogLevel, os.Stderr)

	ca, err := app.NewCarouselApp(cfg, log, out)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize carousel: %w", err)
	}
	return ca, log, nil
}

func runCarousel(cmd *cobra.Command, _ []string) error {
	ca, log, err := newCarouselApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var in io.Reader
	if interactive {
		in = cmd.InOrStdin()
	}

	log.Info("carousel started", slog.String("endpoint", ca.Endpoint()))
	if err := ca.Run(ctx, in); err != nil {
		return err
	}
	log.Info("carousel stopped")
	return nil
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	ca, _, err := newCarouselApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer ca.Shutdown()

	return ca.Submit(cmd.Context(), submitName, submitReview, submitRating, submitImage)
}
