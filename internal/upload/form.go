// Package upload implements the review submission flow: the star-rating
// input, the upload form and user notifications.
package upload

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/utafrali/reviewcarousel/internal/domain"
	"github.com/utafrali/reviewcarousel/internal/reviewapi"
	"github.com/utafrali/reviewcarousel/pkg/validator"
)

// Toast texts shown by the form.
const (
	MsgSelectRating = "Please select a rating!"
	MsgUploaded     = "✅ Review uploaded successfully!"
	errorPrefix     = "❌ "
)

// DefaultFileLabel is shown when no image is attached.
const DefaultFileLabel = "Upload Image"

// ErrNoRating is returned by Submit when no star is selected.
var ErrNoRating = errors.New("no rating selected")

// Submitter sends a review to the endpoint.
type Submitter interface {
	Submit(ctx context.Context, s reviewapi.Submission) (domain.Review, error)
}

// Reloader refreshes the displayed reviews. *carousel.Controller implements it.
type Reloader interface {
	Load(ctx context.Context) error
}

// Input is the form's field state.
type Input struct {
	Name      string `form:"name"`
	Review    string `form:"review"`
	Rating    int    `form:"rating" validate:"required,min=1,max=5"`
	Image     []byte `form:"image"`
	ImageName string `form:"-"`
}

// Form collects a review and submits it.
type Form struct {
	submitter Submitter
	reloader  Reloader
	notifier  Notifier
	logger    *slog.Logger

	Stars StarRating

	mu        sync.Mutex
	name      string
	review    string
	image     []byte
	imageName string
}

// NewForm creates an empty form. reloader may be nil.
func NewForm(submitter Submitter, reloader Reloader, notifier Notifier, logger *slog.Logger) *Form {
	return &Form{
		submitter: submitter,
		reloader:  reloader,
		notifier:  notifier,
		logger:    logger,
	}
}

// SetName sets the reviewer name.
func (f *Form) SetName(name string) {
	f.mu.Lock()
	f.name = name
	f.mu.Unlock()
}

// SetReview sets the review text.
func (f *Form) SetReview(text string) {
	f.mu.Lock()
	f.review = text
	f.mu.Unlock()
}

// Attach sets the image file. Passing nil data detaches it.
func (f *Form) Attach(fileName string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if data == nil {
		f.image, f.imageName = nil, ""
		return
	}
	f.image, f.imageName = data, fileName
}

// FileLabel is the attached file's name, or DefaultFileLabel.
func (f *Form) FileLabel() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.image == nil || f.imageName == "" {
		return DefaultFileLabel
	}
	return f.imageName
}

// Input returns a snapshot of the current field values.
func (f *Form) Input() Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Input{
		Name:      f.name,
		Review:    f.review,
		Rating:    f.Stars.Value(),
		Image:     f.image,
		ImageName: f.imageName,
	}
}

// Reset clears every field and the star selection.
func (f *Form) Reset() {
	f.mu.Lock()
	f.name, f.review, f.image, f.imageName = "", "", nil, ""
	f.mu.Unlock()
	f.Stars.Reset()
}

// Submit validates and posts the form. Without a rating nothing is sent.
// On success the form is reset and the reloader is asked to refresh; a
// failed refresh is logged and does not fail the submission. Every outcome
// is reported through the notifier.
func (f *Form) Submit(ctx context.Context) (domain.Review, error) {
	in := f.Input()

	if in.Rating == 0 {
		f.notifier.Notify(ctx, Toast{Message: MsgSelectRating, Kind: KindError})
		return domain.Review{}, ErrNoRating
	}
	if err := validator.Validate(in); err != nil {
		f.notifier.Notify(ctx, Toast{Message: errorPrefix + err.Error(), Kind: KindError})
		return domain.Review{}, err
	}

	sub := reviewapi.Submission{Name: in.Name, Review: in.Review, Rating: in.Rating}
	if in.Image != nil {
		sub.Image = bytes.NewReader(in.Image)
		sub.ImageName = in.ImageName
	}

	created, err := f.submitter.Submit(ctx, sub)
	if err != nil {
		f.logger.WarnContext(ctx, "review upload failed", slog.String("error", err.Error()))
		f.notifier.Notify(ctx, Toast{Message: errorPrefix + reviewapi.UserMessage(err), Kind: KindError})
		return domain.Review{}, err
	}

	f.notifier.Notify(ctx, Toast{Message: MsgUploaded, Kind: KindSuccess})
	f.Reset()

	if f.reloader != nil {
		if err := f.reloader.Load(ctx); err != nil {
			f.logger.WarnContext(ctx, "reload after upload failed", slog.String("error", err.Error()))
		}
	}
	return created, nil
}
