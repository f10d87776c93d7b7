package storage

import (
	"context"
)

// Storage is a durable key-value store for serialized session records.
// GetRecord returns model.ErrRecordNotFound when the key is absent.
type Storage interface {
	SaveRecord(ctx context.Context, key string, data []byte) error
	GetRecord(ctx context.Context, key string) ([]byte, error)
	DeleteRecord(ctx context.Context, key string) error

	// Close releases connections held by the backend
	Close() error
}
