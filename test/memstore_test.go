package test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// memStore is an in-memory db.Store used by the router tests so the full
// request pipeline can run without Postgres.
type memStore struct {
	mu sync.Mutex

	users      map[int]model.User
	nextUserID int

	forest    []model.Group
	displays  []model.Display
	campaigns []model.Campaign
	schedules []model.GroupSchedule

	displaySeq  int
	campaignSeq int
}

var _ db.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{users: map[int]model.User{}, nextUserID: 1}
}

func deepCopy[T any](in T) T {
	raw, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func (m *memStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextUserID
	m.nextUserID++
	m.users[id] = model.User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		Role:           "admin",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	return id, nil
}

func (m *memStore) GetUserByEmail(email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) GetUserByID(id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := u
	return &out, nil
}

func (m *memStore) UpdateUserProfile(id int, email string, name *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Email = email
	u.Name = name
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

func (m *memStore) LoadGroupForest() ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.forest), nil
}

func (m *memStore) SaveGroupForest(forest []model.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forest = deepCopy(forest)
	return nil
}

func (m *memStore) ListDisplays() ([]model.Display, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.displays), nil
}

func (m *memStore) GetDisplayByID(id string) (*model.Display, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.displays {
		if d.ID == id {
			out := d
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) CreateDisplay(d model.Display) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.displays = append(m.displays, d)
	return nil
}

func (m *memStore) UpdateDisplay(d model.Display) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.displays {
		if m.displays[i].ID == d.ID {
			m.displays[i] = d
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore) DeleteDisplay(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.displays {
		if m.displays[i].ID == id {
			m.displays = append(m.displays[:i], m.displays[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore) UnassignDisplays(groupIDs []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		member[id] = true
	}
	count := 0
	for i := range m.displays {
		if member[m.displays[i].GroupID] {
			m.displays[i].GroupID = ""
			count++
		}
	}
	return count, nil
}

func (m *memStore) ListCampaigns() ([]model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.campaigns), nil
}

func (m *memStore) GetCampaignByID(id string) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.campaigns {
		if c.ID == id {
			out := deepCopy(c)
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) CreateCampaign(c model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns = append(m.campaigns, deepCopy(c))
	return nil
}

func (m *memStore) UpdateCampaign(c model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.campaigns {
		if m.campaigns[i].ID == c.ID {
			m.campaigns[i] = deepCopy(c)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore) SaveCampaigns(campaigns []model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byID := make(map[string]model.Campaign, len(campaigns))
	for _, c := range campaigns {
		byID[c.ID] = c
	}
	for i := range m.campaigns {
		if c, ok := byID[m.campaigns[i].ID]; ok {
			m.campaigns[i] = deepCopy(c)
		}
	}
	return nil
}

func (m *memStore) DeleteCampaign(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.campaigns {
		if m.campaigns[i].ID == id {
			m.campaigns = append(m.campaigns[:i], m.campaigns[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore) LoadSchedules() ([]model.GroupSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.schedules), nil
}

func (m *memStore) SaveSchedules(schedules []model.GroupSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules = deepCopy(schedules)
	return nil
}

func (m *memStore) NextDisplayID(installed time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.displaySeq++
	return fmt.Sprintf("DS-%s-%03d", installed.Format("020106"), m.displaySeq), nil
}

func (m *memStore) NextCampaignID(start time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaignSeq++
	return fmt.Sprintf("AD-%s-%03d", start.Format("020106"), m.campaignSeq), nil
}
