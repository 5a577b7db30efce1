package http

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/reviewcarousel/internal/domain"
	"github.com/utafrali/reviewcarousel/internal/service"
	"github.com/utafrali/reviewcarousel/pkg/httputil"
	"github.com/utafrali/reviewcarousel/pkg/validator"
)

// maxFormMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const maxFormMemory = 1 << 20

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// ListReviews handles GET /reviews. The body is a bare JSON array.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// CreateReview handles POST /reviews (multipart/form-data).
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	// Add 1MB overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxImageSize+(1<<20))

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteErrorCode(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large")
			return
		}
		httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", "failed to parse multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	input := &service.CreateReviewInput{
		Name:   r.FormValue("name"),
		Review: r.FormValue("review"),
	}

	if v := strings.TrimSpace(r.FormValue("rating")); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", "rating must be an integer")
			return
		}
		input.Rating = rating
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", "invalid image: "+err.Error())
		return
	default:
		defer file.Close()
		input.Image = &service.ImageInput{
			FileName:    header.Filename,
			ContentType: imageContentType(header, file),
			Size:        header.Size,
			Data:        file,
		}
	}

	review, err := h.service.CreateReview(r.Context(), input)
	if err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, r, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, review)
}

// GetImage handles GET /media/*.
func (h *ReviewHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", "image key is required")
		return
	}

	obj, err := h.service.GetImage(r.Context(), key)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}

// imageContentType prefers the part's declared type and sniffs the content
// when the client sent none or a generic one.
func imageContentType(header *multipart.FileHeader, file multipart.File) string {
	ct := header.Header.Get("Content-Type")
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	_, _ = file.Seek(0, io.SeekStart)
	return http.DetectContentType(head[:n])
}
