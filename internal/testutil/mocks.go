package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/windoze95/cardapio-api/internal/ai"
	"github.com/windoze95/cardapio-api/internal/models"
	"github.com/windoze95/cardapio-api/internal/repository"
	"gorm.io/gorm"
)

// --- MockSpeechProvider ---

// MockSpeechProvider is a mock implementation of ai.SpeechProvider.
type MockSpeechProvider struct {
	TranscribeAudioFunc func(ctx context.Context, req ai.TranscriptionRequest) (string, error)
}

func (m *MockSpeechProvider) TranscribeAudio(ctx context.Context, req ai.TranscriptionRequest) (string, error) {
	if m.TranscribeAudioFunc != nil {
		return m.TranscribeAudioFunc(ctx, req)
	}
	return "", fmt.Errorf("TranscribeAudio not configured")
}

// --- MockMenuRepo ---

// MockMenuRepo is an in-memory mock implementation of repository.MenuRepo.
type MockMenuRepo struct {
	mu     sync.Mutex
	Items  map[string]*models.MenuItem
	NextID uint

	ListMenuItemsErr error
	SeedMenuItemsErr error
	SeedCalls        int
}

var _ repository.MenuRepo = (*MockMenuRepo)(nil)

// NewMockMenuRepo creates a new MockMenuRepo holding items.
func NewMockMenuRepo(items ...models.MenuItem) *MockMenuRepo {
	m := &MockMenuRepo{
		Items:  make(map[string]*models.MenuItem),
		NextID: 1,
	}
	for i := range items {
		m.insert(items[i])
	}
	return m
}

func (m *MockMenuRepo) insert(item models.MenuItem) {
	item.Model = gorm.Model{ID: m.NextID}
	m.NextID++
	m.Items[item.Name] = &item
}

func (m *MockMenuRepo) ListMenuItems() ([]models.MenuItem, error) {
	if m.ListMenuItemsErr != nil {
		return nil, m.ListMenuItemsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.MenuItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (m *MockMenuRepo) GetMenuItemByName(name string) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.Items[name]
	if !ok {
		return nil, repository.NotFoundError{}
	}
	return item, nil
}

func (m *MockMenuRepo) SeedMenuItems(items []models.MenuItem) (bool, error) {
	if m.SeedMenuItemsErr != nil {
		return false, m.SeedMenuItemsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SeedCalls++
	if len(m.Items) > 0 || len(items) == 0 {
		return false, nil
	}
	for _, item := range items {
		m.insert(item)
	}
	return true, nil
}

func (m *MockMenuRepo) UpdateMenuItemPrice(name string, price int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.Items[name]
	if !ok {
		return repository.NotFoundError{}
	}
	item.Price = price
	return nil
}

func (m *MockMenuRepo) SetMenuItemAvailable(name string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.Items[name]
	if !ok {
		return repository.NotFoundError{}
	}
	item.Available = available
	return nil
}
