package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rightmove-parser-service/internal/core/domain"
)

type fakeStorage struct {
	saved   []domain.PropertyRecord
	saveErr error
}

func (s *fakeStorage) Save(_ context.Context, record domain.PropertyRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, record)
	return nil
}

var testLink = domain.PropertyLink{
	URL:        "https://www.rightmove.co.uk/properties/144595394",
	PageNumber: 1,
}

func TestProcessLinkSavesRecord(t *testing.T) {
	fetcher := &fakeFetcher{}
	storage := &fakeStorage{}

	uc := NewProcessLinkUseCase(fetcher, storage)
	err := uc.Execute(context.Background(), testLink)

	require.NoError(t, err)
	require.Len(t, storage.saved, 1)
	assert.Equal(t, testLink.URL, storage.saved[0].URL)
}

func TestProcessLinkInsufficientData(t *testing.T) {
	fetcher := &fakeFetcher{
		detailsErr: fmt.Errorf("adapter: %w", domain.ErrInsufficientData),
	}
	storage := &fakeStorage{}

	uc := NewProcessLinkUseCase(fetcher, storage)
	err := uc.Execute(context.Background(), testLink)

	assert.ErrorIs(t, err, domain.ErrInsufficientData)
	assert.Empty(t, storage.saved)
}

func TestProcessLinkInvalidResponse(t *testing.T) {
	fetcher := &fakeFetcher{
		detailsErr: fmt.Errorf("adapter: %w", domain.ErrInvalidResponse),
	}
	storage := &fakeStorage{}

	uc := NewProcessLinkUseCase(fetcher, storage)
	err := uc.Execute(context.Background(), testLink)

	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Empty(t, storage.saved)
}

func TestProcessLinkStorageFailure(t *testing.T) {
	fetcher := &fakeFetcher{}
	storage := &fakeStorage{saveErr: errors.New("disk full")}

	uc := NewProcessLinkUseCase(fetcher, storage)
	err := uc.Execute(context.Background(), testLink)

	assert.Error(t, err)
}
