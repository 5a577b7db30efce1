package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/utafrali/reviewcarousel/internal/carousel"
	"github.com/utafrali/reviewcarousel/internal/config"
	"github.com/utafrali/reviewcarousel/internal/render"
	"github.com/utafrali/reviewcarousel/internal/reviewapi"
	"github.com/utafrali/reviewcarousel/internal/upload"
	"github.com/utafrali/reviewcarousel/pkg/tracing"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// CarouselApp wires the review client, carousel, rotator and upload form.
type CarouselApp struct {
	cfg        *config.Config
	logger     *slog.Logger
	out        io.Writer
	client     *reviewapi.Client
	controller *carousel.Controller
	rotator    *carousel.Rotator
	toaster    *upload.Toaster
	form       *upload.Form
	shutdown   tracing.ShutdownFunc
}

// NewCarouselApp builds the carousel runner. Windows are written to out.
func NewCarouselApp(cfg *config.Config, logger *slog.Logger, out io.Writer) (*CarouselApp, error) {
	out = &lockedWriter{w: out}

	shutdown, err := tracing.InitTracer(context.Background(), cfg.Tracing("review-carousel"))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	clientCfg := reviewapi.DefaultConfig(cfg.ReviewsEndpoint)
	clientCfg.HTTP.Timeout = cfg.ClientTimeout
	clientCfg.HTTP.MaxRetries = cfg.ClientMaxRetries
	client, err := reviewapi.New(clientCfg, logger)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, fmt.Errorf("create review client: %w", err)
	}

	target := render.Multi{
		render.NewText(out),
		render.NewLog(logger, slog.LevelDebug),
	}
	controller := carousel.NewController(client, target, carousel.Config{
		Name:         "reviews",
		VisibleCount: cfg.VisibleCount,
		AllowRepeat:  cfg.AllowRepeat,
	}, logger)

	toaster := upload.NewToaster(upload.NewLogNotifier(logger))

	a := &CarouselApp{
		cfg:        cfg,
		logger:     logger,
		out:        out,
		client:     client,
		controller: controller,
		rotator:    carousel.NewRotator(controller, cfg.RotationInterval, logger),
		toaster:    toaster,
		form:       upload.NewForm(client, controller, toaster, logger),
		shutdown:   shutdown,
	}

	controller.On(carousel.EventLoadFailed, func(ctx context.Context, n carousel.Notice) {
		if n.Window.Empty() {
			// Nothing was ever shown; give the viewer the placeholder.
			controller.Render(ctx, carousel.Forward)
		}
	})

	return a, nil
}

// Controller returns the carousel controller.
func (a *CarouselApp) Controller() *carousel.Controller {
	return a.controller
}

// Endpoint returns the reviews URL in use.
func (a *CarouselApp) Endpoint() string {
	return a.client.Endpoint()
}

// Form returns the upload form.
func (a *CarouselApp) Form() *upload.Form {
	return a.form
}

// Run loads the reviews, starts autorotation and executes commands read from
// in until ctx is cancelled, in is exhausted or a quit command is read. A
// nil in runs the display only.
func (a *CarouselApp) Run(ctx context.Context, in io.Reader) error {
	defer a.Shutdown()

	// A failed first load leaves the carousel empty; rotation keeps running
	// and a later reload can populate it.
	_ = a.controller.Load(ctx)

	if err := a.rotator.Start(ctx); err != nil {
		return fmt.Errorf("start rotator: %w", err)
	}

	if in == nil {
		<-ctx.Done()
		return nil
	}

	// The scanner cannot be interrupted; it exits once in is closed or
	// exhausted.
	lines := make(chan string)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return ErrQuit
				}
				if err := a.Exec(gctx, line); err != nil {
					if errors.Is(err, ErrQuit) {
						return ErrQuit
					}
					fmt.Fprintf(a.out, "error: %v\n", err)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		a.rotator.Stop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, ErrQuit) {
		return err
	}
	return nil
}

// Exec runs a single command line.
func (a *CarouselApp) Exec(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "next", "n":
		a.controller.Advance(ctx)
	case "prev", "p":
		a.controller.Retreat(ctx)
	case "reload", "r":
		return a.controller.Load(ctx)
	case "name":
		a.form.SetName(arg)
	case "review":
		a.form.SetReview(arg)
	case "rate":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("rate: %q is not a number", arg)
		}
		if err := a.form.Stars.Select(n); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "rating %s\n", a.form.Stars.String())
	case "image":
		if arg == "" {
			a.form.Attach("", nil)
			return nil
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return fmt.Errorf("image: %w", err)
		}
		a.form.Attach(filepath.Base(arg), data)
		fmt.Fprintf(a.out, "attached %s\n", a.form.FileLabel())
	case "submit":
		_, err := a.form.Submit(ctx)
		if t, ok := a.toaster.Current(); ok {
			fmt.Fprintln(a.out, t.Message)
		}
		if err != nil && !errors.Is(err, upload.ErrNoRating) {
			a.logger.DebugContext(ctx, "submit failed", slog.String("error", err.Error()))
		}
	case "help", "h", "?":
		fmt.Fprintln(a.out, helpText)
	case "quit", "q", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

const helpText = `commands:
  next | prev          rotate the carousel
  reload               fetch reviews again
  name <text>          set reviewer name
  review <text>        set review text
  rate <1-5>           select a star rating
  image [path]         attach an image (no path detaches)
  submit               upload the review
  quit`

// Submit posts a single review outside the interactive loop.
func (a *CarouselApp) Submit(ctx context.Context, name, text string, rating int, imagePath string) error {
	a.form.SetName(name)
	a.form.SetReview(text)
	if rating != 0 {
		if err := a.form.Stars.Select(rating); err != nil {
			return err
		}
	}
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		a.form.Attach(filepath.Base(imagePath), data)
	}

	_, err := a.form.Submit(ctx)
	if t, ok := a.toaster.Current(); ok {
		fmt.Fprintln(a.out, t.Message)
	}
	return err
}

// Shutdown stops the rotator and flushes traces. It is safe to call twice.
func (a *CarouselApp) Shutdown() {
	a.rotator.Stop()
	if err := a.shutdown(context.Background()); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}
}

// lockedWriter serializes writes from the rotator and the command loop.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
