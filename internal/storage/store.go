package storage

import (
	"context"
	"errors"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// Store persists the whole state graph as one versioned document.
type Store interface {
	// Load returns the committed state. A store that has never been saved
	// yields an empty, valid state.
	Load(ctx context.Context, opts LoadOptions) (*LoadResult, error)
	// Save commits s atomically: on error the previously committed
	// document is left untouched.
	Save(ctx context.Context, s *domain.State) error
}

// DecodeFrom runs Decode for a document read from source and classifies
// failures: schema and integrity errors pass through, anything else is
// reported as an unreadable document.
func DecodeFrom(data []byte, opts LoadOptions, source string) (*LoadResult, error) {
	res, err := Decode(data, opts)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, domain.ErrUnsupportedSchema) || errors.Is(err, domain.ErrReferentialIntegrity) {
		return nil, err
	}
	return nil, &domain.StorageError{Op: "decode", Path: source, Err: err}
}
