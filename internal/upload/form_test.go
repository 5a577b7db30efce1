package upload

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/reviewcarousel/internal/domain"
	"github.com/utafrali/reviewcarousel/internal/reviewapi"
	"github.com/utafrali/reviewcarousel/pkg/logger"
)

// --- Mocks ---

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, s reviewapi.Submission) (domain.Review, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Review), args.Error(1)
}

type mockReloader struct {
	mock.Mock
}

func (m *mockReloader) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type recordingNotifier struct {
	toasts []Toast
}

func (n *recordingNotifier) Notify(_ context.Context, t Toast) {
	n.toasts = append(n.toasts, t)
}

func (n *recordingNotifier) last() Toast {
	if len(n.toasts) == 0 {
		return Toast{}
	}
	return n.toasts[len(n.toasts)-1]
}

func newTestForm() (*Form, *mockSubmitter, *mockReloader, *recordingNotifier) {
	sub := &mockSubmitter{}
	rel := &mockReloader{}
	notes := &recordingNotifier{}
	return NewForm(sub, rel, notes, logger.Discard()), sub, rel, notes
}

// --- Tests ---

func TestSubmit_RequiresRating(t *testing.T) {
	f, sub, rel, notes := newTestForm()
	f.SetName("Ada")
	f.SetReview("Nice")

	_, err := f.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNoRating)
	assert.Equal(t, Toast{Message: "Please select a rating!", Kind: KindError}, notes.last())
	sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	rel.AssertNotCalled(t, "Load", mock.Anything)
	assert.Equal(t, "Ada", f.Input().Name, "form is left untouched")
}

func TestSubmit_Success(t *testing.T) {
	f, sub, rel, notes := newTestForm()
	f.SetName("Ada")
	f.SetReview("Nice")
	f.Attach("me.png", []byte("png"))
	require.NoError(t, f.Stars.Select(4))

	created := domain.Review{ID: "r1", Name: "Ada", Review: "Nice", Rating: 4}
	sub.On("Submit", mock.Anything, mock.MatchedBy(func(s reviewapi.Submission) bool {
		if s.Name != "Ada" || s.Review != "Nice" || s.Rating != 4 || s.ImageName != "me.png" {
			return false
		}
		img, ok := s.Image.(*bytes.Reader)
		return ok && img.Len() == len("png")
	})).Return(created, nil).Once()
	rel.On("Load", mock.Anything).Return(nil).Once()

	got, err := f.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, Toast{Message: "✅ Review uploaded successfully!", Kind: KindSuccess}, notes.last())
	assert.Equal(t, Input{}, f.Input(), "form is reset")
	assert.Equal(t, DefaultFileLabel, f.FileLabel())
	assert.False(t, f.Stars.Filled(1))
	sub.AssertExpectations(t)
	rel.AssertExpectations(t)
}

func TestSubmit_WithoutImage(t *testing.T) {
	f, sub, rel, _ := newTestForm()
	require.NoError(t, f.Stars.Select(2))

	sub.On("Submit", mock.Anything, mock.MatchedBy(func(s reviewapi.Submission) bool {
		return s.Image == nil && s.Rating == 2
	})).Return(domain.Review{Rating: 2}, nil).Once()
	rel.On("Load", mock.Anything).Return(nil).Once()

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	sub.AssertExpectations(t)
}

func TestSubmit_Failure(t *testing.T) {
	f, sub, rel, notes := newTestForm()
	f.SetName("Ada")
	require.NoError(t, f.Stars.Select(5))

	sub.On("Submit", mock.Anything, mock.Anything).
		Return(domain.Review{}, &reviewapi.StatusError{StatusCode: 413, Message: "image too large"}).Once()

	_, err := f.Submit(context.Background())

	assert.ErrorIs(t, err, reviewapi.ErrBadStatus)
	assert.Equal(t, Toast{Message: "❌ image too large", Kind: KindError}, notes.last())
	assert.Equal(t, "Ada", f.Input().Name, "form keeps its values")
	assert.Equal(t, 5, f.Stars.Value())
	rel.AssertNotCalled(t, "Load", mock.Anything)
}

func TestSubmit_ReloadFailureDoesNotFailUpload(t *testing.T) {
	f, sub, rel, notes := newTestForm()
	require.NoError(t, f.Stars.Select(3))

	sub.On("Submit", mock.Anything, mock.Anything).Return(domain.Review{Rating: 3}, nil).Once()
	rel.On("Load", mock.Anything).Return(errors.New("offline")).Once()

	_, err := f.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, KindSuccess, notes.last().Kind)
	rel.AssertExpectations(t)
}

func TestSubmit_NilReloader(t *testing.T) {
	sub := &mockSubmitter{}
	notes := &recordingNotifier{}
	f := NewForm(sub, nil, notes, logger.Discard())
	require.NoError(t, f.Stars.Select(1))
	sub.On("Submit", mock.Anything, mock.Anything).Return(domain.Review{Rating: 1}, nil).Once()

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
}

func TestFileLabel(t *testing.T) {
	f, _, _, _ := newTestForm()
	assert.Equal(t, "Upload Image", f.FileLabel())

	f.Attach("cat.jpg", []byte{1})
	assert.Equal(t, "cat.jpg", f.FileLabel())

	f.Attach("", nil)
	assert.Equal(t, "Upload Image", f.FileLabel())
}
