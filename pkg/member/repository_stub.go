package member

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	members map[string]Member // uid -> member
	nextID  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		members: make(map[string]Member),
		nextID:  1,
	}
}

// AddMember registers a member in the stub and returns it with an assigned id.
func (r *RepositoryStub) AddMember(m Member) Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == 0 {
		m.ID = r.nextID
		r.nextID++
	}
	r.members[m.UID] = m
	return m
}

func (r *RepositoryStub) GetByUID(ctx context.Context, uid string) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[uid]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return m, nil
}

func (r *RepositoryStub) ListByLab(ctx context.Context, labId int) ([]Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Member
	for _, m := range r.members {
		if m.LabID == labId {
			result = append(result, m)
		}
	}

	// Stable order for assertions
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[i].ID > result[j].ID {
				result[i], result[j] = result[j], result[i]
			}
		}
	}

	return result, nil
}
