package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/fantasta/internal/dependencies/mocks"
	"github.com/mcoot/fantasta/internal/metrics"
	"github.com/mcoot/fantasta/internal/services/ledger"
	"github.com/mcoot/fantasta/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(opts ledger.Options) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, metrics.New(), opts, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}
