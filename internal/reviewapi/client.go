// Package reviewapi talks to the reviews REST endpoint.
package reviewapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/reviewcarousel/internal/domain"
	"github.com/utafrali/reviewcarousel/pkg/httpclient"
	"github.com/utafrali/reviewcarousel/pkg/logger"
	"github.com/utafrali/reviewcarousel/pkg/tracing"
)

// maxPayload bounds the size of a decoded list response.
const maxPayload = 8 << 20

// Config configures a Client.
type Config struct {
	// Endpoint is the absolute URL of the reviews collection.
	Endpoint string
	HTTP     httpclient.Config
	Breaker  httpclient.CircuitBreakerConfig
}

// DefaultConfig returns client defaults for endpoint.
func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint: endpoint,
		HTTP:     httpclient.DefaultConfig(),
		Breaker:  httpclient.DefaultCircuitBreakerConfig("reviewapi"),
	}
}

// Submission is a new review with an optional image.
type Submission struct {
	Name   string
	Review string
	Rating int
	// Image is sent as the "image" file part when non-nil.
	Image     io.Reader
	ImageName string
	// ImageType is the part's Content-Type. When empty it is derived from
	// ImageName, then from the content itself.
	ImageType string
}

// Client lists and submits reviews. It is safe for concurrent use.
type Client struct {
	endpoint string
	http     *httpclient.CircuitBreakerClient
	logger   *slog.Logger
	tracer   trace.Tracer
}

// New builds a client for cfg.Endpoint.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute URL", cfg.Endpoint)
	}

	return &Client{
		endpoint: u.String(),
		http:     httpclient.NewCircuitBreakerClient(httpclient.New(cfg.HTTP), cfg.Breaker, logger),
		logger:   logger,
		tracer:   tracing.Tracer("github.com/utafrali/reviewcarousel/reviewapi"),
	}, nil
}

// Endpoint returns the reviews URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List fetches every review. Transport failures, timeouts and an open
// breaker yield ErrNetworkFailure; non-2xx yields a *StatusError; an
// undecodable body or a rating outside [0,5] yields ErrMalformedPayload.
func (c *Client) List(ctx context.Context) ([]domain.Review, error) {
	ctx, span := c.tracer.Start(ctx, "reviewapi.List", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, c.fail(span, classify(err))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(span, statusError(resp))
	}
	defer func() { _ = resp.Body.Close() }()

	var reviews []domain.Review
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayload)).Decode(&reviews); err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: %w", ErrMalformedPayload, err))
	}
	for i, r := range reviews {
		if err := r.Validate(); err != nil {
			return nil, c.fail(span, fmt.Errorf("%w: review %d: %w", ErrMalformedPayload, i, err))
		}
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	span.SetAttributes(attribute.Int("reviews.count", len(reviews)))
	logger.WithContext(ctx, c.logger).DebugContext(ctx, "fetched reviews",
		slog.Int("count", len(reviews)),
		slog.String("breaker", c.http.Name()),
	)
	return reviews, nil
}

// Submit posts s as multipart/form-data. It is attempted once. On success the
// created review is returned; if the response body is not a review, the
// submitted fields are echoed back.
func (c *Client) Submit(ctx context.Context, s Submission) (domain.Review, error) {
	ctx, span := c.tracer.Start(ctx, "reviewapi.Submit", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	body, contentType, err := encodeSubmission(s)
	if err != nil {
		return domain.Review{}, c.fail(span, fmt.Errorf("encode submission: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Review{}, c.fail(span, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return domain.Review{}, c.fail(span, classify(err))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if httpclient.IsClientError(resp.StatusCode) {
			logger.WithContext(ctx, c.logger).InfoContext(ctx, "review rejected",
				slog.Int("status", resp.StatusCode),
			)
		}
		return domain.Review{}, c.fail(span, statusError(resp))
	}
	defer func() { _ = resp.Body.Close() }()

	created := domain.Review{Name: s.Name, Review: s.Review, Rating: s.Rating}
	var decoded domain.Review
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayload)).Decode(&decoded); err == nil && decoded.Name != "" {
		created = decoded
	}

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "review submitted",
		slog.String("review_id", created.ID),
		slog.Int("rating", created.Rating),
	)
	return created, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.SetAttributes(attribute.String("breaker.state", c.http.State().String()))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// classify maps a breaker or transport error to a failure kind.
func classify(err error) error {
	var se *httpclient.ServerError
	if errors.As(err, &se) {
		re := httpclient.ParseResponseError(&http.Response{
			StatusCode: se.StatusCode,
			Body:       io.NopCloser(strings.NewReader(se.Body)),
		})
		return &StatusError{StatusCode: se.StatusCode, Code: re.Code, Message: re.Message}
	}
	return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
}

func statusError(resp *http.Response) error {
	re := httpclient.ParseResponseError(resp)
	return &StatusError{StatusCode: re.StatusCode, Code: re.Code, Message: re.Message}
}

func encodeSubmission(s Submission) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", s.Name},
		{"review", s.Review},
		{"rating", strconv.Itoa(s.Rating)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if s.Image != nil {
		if err := writeImagePart(w, s); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func writeImagePart(w *multipart.Writer, s Submission) error {
	name := s.ImageName
	if name == "" {
		name = "image"
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(s.Image, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read image: %w", err)
	}
	head = head[:n]

	ct := s.ImageType
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	}
	if ct == "" {
		ct = http.DetectContentType(head)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(name)))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write(head); err != nil {
		return err
	}
	if _, err := io.Copy(part, s.Image); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	return nil
}
