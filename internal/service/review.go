package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/reviewcarousel/internal/domain"
	"github.com/utafrali/reviewcarousel/internal/repository"
	"github.com/utafrali/reviewcarousel/internal/storage"
	apperrors "github.com/utafrali/reviewcarousel/pkg/errors"
	"github.com/utafrali/reviewcarousel/pkg/validator"
)

// imageExtensions maps allowed content types to the stored key suffix.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ReviewService implements the business logic of the review endpoint.
type ReviewService struct {
	repo    repository.ReviewRepository
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, store storage.Storage, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:    repo,
		storage: store,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateReviewInput holds a submitted review.
type CreateReviewInput struct {
	Name   string      `json:"name"`
	Review string      `json:"review"`
	Rating int         `json:"rating" validate:"required,min=1,max=5"`
	Image  *ImageInput `json:"-"`
}

// ImageInput is an optional uploaded image.
type ImageInput struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// CreateReview validates the input, stores the image if present and saves
// the review.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	review := &domain.Review{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Review:    strings.TrimSpace(input.Review),
		Rating:    input.Rating,
		CreatedAt: s.now().UTC(),
	}

	var imageKey string
	if input.Image != nil {
		img := input.Image
		if !domain.IsAllowedImageType(img.ContentType) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", img.ContentType))
		}
		if img.Size > domain.MaxImageSize {
			return nil, apperrors.PayloadTooLarge(fmt.Sprintf("image size %d exceeds maximum allowed size of %d bytes", img.Size, domain.MaxImageSize))
		}
		if img.Size <= 0 {
			return nil, apperrors.InvalidInput("image must not be empty")
		}

		imageKey = "reviews/" + id + imageExtensions[img.ContentType]
		result, err := s.storage.Upload(ctx, &storage.UploadInput{
			Key:         imageKey,
			ContentType: img.ContentType,
			Size:        img.Size,
			Data:        img.Data,
		})
		if err != nil {
			return nil, apperrors.Wrap(err, "upload image "+filepath.Base(img.FileName))
		}
		review.ImageURL = result.URL
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if imageKey != "" {
			if delErr := s.storage.Delete(ctx, imageKey); delErr != nil {
				s.logger.ErrorContext(ctx, "failed to clean up image after store error",
					slog.String("key", imageKey),
					slog.String("error", delErr.Error()),
				)
			}
		}
		return nil, apperrors.Internal(fmt.Errorf("create review: %w", err))
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.Int("rating", review.Rating),
		slog.Bool("has_image", review.HasImage()),
	)

	return review, nil
}

// ListReviews returns every review, oldest first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list reviews", slog.String("error", err.Error()))
		return nil, apperrors.Unavailable("reviews are temporarily unavailable")
	}
	return reviews, nil
}

// GetImage returns a stored image.
func (s *ReviewService) GetImage(ctx context.Context, key string) (*storage.Object, error) {
	obj, err := s.storage.Open(ctx, key)
	if err != nil {
		return nil, apperrors.NotFound("image", key)
	}
	return obj, nil
}

// Ping reports whether the review store is reachable.
func (s *ReviewService) Ping(ctx context.Context) error {
	_, err := s.repo.Count(ctx)
	return err
}
