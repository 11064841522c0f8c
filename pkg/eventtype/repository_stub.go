package eventtype

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu     sync.RWMutex
	items  map[int][]EventType // labId -> types
	nextID int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:  make(map[int][]EventType),
		nextID: 1,
	}
}

func (r *RepositoryStub) List(ctx context.Context, labId int) ([]EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]EventType(nil), r.items[labId]...), nil
}

func (r *RepositoryStub) Store(ctx context.Context, labId int, et EventType) (EventType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	et.ID = r.nextID
	r.nextID++
	r.items[labId] = append(r.items[labId], et)
	return et, nil
}
