package extraction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexdata/internal/domain/models"
	"nexdata/internal/repository/slot"
	"nexdata/internal/service/inventory"
	"nexdata/pkg/clients/gemini"
)

// stubClient is a scripted gemini.Client.
type stubClient struct {
	items   []gemini.ExtractedItem
	err     error
	release chan struct{} // when set, ExtractRecords blocks until closed
}

func (s *stubClient) ExtractRecords(ctx context.Context, text string) ([]gemini.ExtractedItem, error) {
	if s.release != nil {
		<-s.release
	}
	return s.items, s.err
}

// memorySlot is a minimal in-memory slot backend.
type memorySlot struct {
	mu      sync.Mutex
	records []models.DataRecord
}

func (m *memorySlot) Load(context.Context) ([]models.DataRecord, error) { return nil, slot.ErrEmpty }
func (m *memorySlot) Save(_ context.Context, records []models.DataRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
	return nil
}

func newTestStore(t *testing.T) *inventory.Store {
	t.Helper()
	store := inventory.NewStore(&memorySlot{}, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))
	return store
}

func newTestService(t *testing.T, client gemini.Client) (*Service, *inventory.Store) {
	t.Helper()
	store := newTestStore(t)
	svc := NewService(client, store, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }

	ids := []string{"gen-1", "gen-2", "gen-3"}
	svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	return svc, store
}

func TestExtractNotConfigured(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.client = nil

	_, err := svc.Extract(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestExtractInfersDefaultsAndStores(t *testing.T) {
	client := &stubClient{items: []gemini.ExtractedItem{
		{ProductName: "Dell XPS 13", Quantity: 50, Price: 1200, Category: "Electronics"},
	}}
	svc, store := newTestService(t, client)

	created, err := svc.Extract(context.Background(), "50 Dell XPS 13 laptops at $1200")
	require.NoError(t, err)
	require.Len(t, created, 1)

	got := created[0]
	assert.Equal(t, "gen-1", got.ID)
	assert.Equal(t, "Dell XPS 13", got.ProductName)
	assert.Equal(t, models.CategoryElectronics, got.Category)
	assert.Equal(t, 50, got.Quantity)
	assert.Equal(t, 1200.0, got.Price)
	assert.Equal(t, models.StatusInStock, got.Status)
	assert.Equal(t, "2024-06-15", got.DateAdded)
	assert.Equal(t, "Imported via AI", got.Notes)

	records := store.Records()
	require.Len(t, records, 6) // seed + extracted
	assert.Equal(t, "gen-1", records[0].ID)
}

func TestExtractCompletesSparseItems(t *testing.T) {
	client := &stubClient{items: []gemini.ExtractedItem{
		{Category: "Groceries", Quantity: -3, Price: -1, Status: "Backordered"},
	}}
	svc, _ := newTestService(t, client)

	created, err := svc.Extract(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, created, 1)

	got := created[0]
	assert.Equal(t, "Unknown Product", got.ProductName)
	assert.Equal(t, models.CategoryOther, got.Category)
	assert.Equal(t, models.StatusInStock, got.Status)
	assert.Zero(t, got.Quantity)
	assert.Zero(t, got.Price)
}

func TestExtractHonorsSuppliedDate(t *testing.T) {
	client := &stubClient{items: []gemini.ExtractedItem{
		{ProductName: "A", Quantity: 1, Price: 1, Category: "Other", DateAdded: "2023-01-31"},
		{ProductName: "B", Quantity: 1, Price: 1, Category: "Other", DateAdded: "31/01/2023"},
	}}
	svc, _ := newTestService(t, client)

	created, err := svc.Extract(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "2023-01-31", created[0].DateAdded)
	assert.Equal(t, "2024-06-15", created[1].DateAdded) // invalid date falls back to today
}

func TestExtractMultipleItemsInOrder(t *testing.T) {
	client := &stubClient{items: []gemini.ExtractedItem{
		{ProductName: "First", Quantity: 1, Price: 1, Category: "Other"},
		{ProductName: "Second", Quantity: 2, Price: 2, Category: "Other"},
	}}
	svc, store := newTestService(t, client)

	created, err := svc.Extract(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "First", created[0].ProductName)

	// Each item is prepended in turn, so the last extracted sits first.
	records := store.Records()
	assert.Equal(t, "Second", records[0].ProductName)
	assert.Equal(t, "First", records[1].ProductName)
}

func TestExtractEmptyResultIsNotAnError(t *testing.T) {
	svc, store := newTestService(t, &stubClient{})

	created, err := svc.Extract(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, 5, store.Count())
}

func TestExtractClientErrorPropagates(t *testing.T) {
	svc, _ := newTestService(t, &stubClient{err: errors.New("malformed response")})

	_, err := svc.Extract(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestExtractRejectsConcurrentRuns(t *testing.T) {
	release := make(chan struct{})
	client := &stubClient{release: release}
	svc, _ := newTestService(t, client)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Extract(context.Background(), "slow text")
		firstDone <- err
	}()

	// Wait for the first call to take the in-flight slot.
	require.Eventually(t, func() bool {
		return svc.inFlight.Load()
	}, time.Second, time.Millisecond)

	_, err := svc.Extract(context.Background(), "second text")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-firstDone)
}
