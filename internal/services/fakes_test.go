package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"service-desk/internal/entities"
	"service-desk/internal/repositories"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/eventbus"
	"service-desk/pkg/types"
)

type memRequestRepo struct {
	mu          sync.Mutex
	rows        map[string]entities.ServiceRequest
	attachments map[string]entities.Attachment
	clock       time.Time
	// beforeWrite runs inside ApplyTransition before the row is replaced.
	beforeWrite func()
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{
		rows:        map[string]entities.ServiceRequest{},
		attachments: map[string]entities.Attachment{},
		clock:       time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *memRequestRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memRequestRepo) Create(_ context.Context, req entities.ServiceRequest, att *entities.Attachment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = uuid.NewString()
	now := m.tick()
	req.CreatedAt, req.UpdatedAt = now, now
	if att != nil && len(att.Data) > 0 {
		req.HasAttachment = true
		m.attachments[req.ID] = *att
	}
	m.rows[req.ID] = req
	return req.ID, nil
}

func (m *memRequestRepo) FindByID(_ context.Context, id string) (*entities.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (m *memRequestRepo) FindAttachment(_ context.Context, id string) (*entities.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attachments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (m *memRequestRepo) List(_ context.Context, q types.RequestQuery) ([]entities.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.ServiceRequest, 0, len(m.rows))
	for _, r := range m.rows {
		if q.Status != "" && !strings.Contains(","+q.Status+",", ","+r.Status.String()+",") {
			continue
		}
		if q.Type != "" && !strings.EqualFold(q.Type, r.Type) {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(r.Title+r.Client+r.Address), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memRequestRepo) ApplyTransition(_ context.Context, id string, patch entities.RequestPatch) (*entities.ServiceRequest, error) {
	if m.beforeWrite != nil {
		m.beforeWrite()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	r.Status = patch.Status
	r.AdminResponse = patch.AdminResponse
	r.Price = patch.Price
	if patch.SetAssignment {
		r.AssignedTechnician = patch.AssignedTechnician
	}
	r.UpdatedAt = m.tick()
	m.rows[id] = r
	return &r, nil
}

func (m *memRequestRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	delete(m.attachments, id)
	return nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

var _ repositories.CacheRepositoryInterface = (*memCache)(nil)

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = fmt.Sprint(value)
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	v, ok := c.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return c.err
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *memCache) Expire(_ context.Context, key string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, c.err
}

type memCatalogRepo struct {
	mu      sync.Mutex
	entries []entities.CatalogEntry
	nextID  int64
}

func (m *memCatalogRepo) List(_ context.Context, category string) ([]entities.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entities.CatalogEntry{}
	for _, e := range m.entries {
		if category == "" || e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memCatalogRepo) exists(e entities.CatalogEntry) bool {
	for _, x := range m.entries {
		if x.Category == e.Category && x.Value == e.Value {
			return true
		}
	}
	return false
}

func (m *memCatalogRepo) Create(_ context.Context, e entities.CatalogEntry) (*entities.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exists(e) {
		return nil, apperrors.ErrConflictDuplicate
	}
	m.nextID++
	e.ID = m.nextID
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *memCatalogRepo) Upsert(ctx context.Context, _ pgx.Tx, e entities.CatalogEntry) (bool, error) {
	if _, err := m.Create(ctx, e); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memCatalogRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// inlineTx runs fn without a real transaction.
type inlineTx struct{}

func (inlineTx) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type memUserRepo struct {
	users []entities.User
}

func (m *memUserRepo) FindUserByID(_ context.Context, id int64) (*entities.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memUserRepo) FindUserByLogin(_ context.Context, login string) (*entities.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Login, login) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

func (m *memUserRepo) UpsertUser(_ context.Context, _ pgx.Tx, u entities.User) (bool, error) {
	m.users = append(m.users, u)
	return true, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
