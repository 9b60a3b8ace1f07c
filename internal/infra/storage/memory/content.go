package memory

import (
	"context"
	"sort"
	"sync"

	domaincontent "realty/internal/domain/content"
)

// ContentStore implements all five content repositories behind a single
// mutex; the admin dashboard traffic does not justify finer locking.
type ContentStore struct {
	mu        sync.RWMutex
	banners   map[string]*domaincontent.Banner
	partners  map[string]*domaincontent.Partner
	locations map[string]*domaincontent.Location
	posts     map[string]*domaincontent.Post
	contacts  map[string]*domaincontent.ContactMessage
}

func NewContentStore() *ContentStore {
	return &ContentStore{
		banners:   make(map[string]*domaincontent.Banner),
		partners:  make(map[string]*domaincontent.Partner),
		locations: make(map[string]*domaincontent.Location),
		posts:     make(map[string]*domaincontent.Post),
		contacts:  make(map[string]*domaincontent.ContactMessage),
	}
}

type BannerStore struct{ *ContentStore }
type PartnerStore struct{ *ContentStore }
type LocationStore struct{ *ContentStore }
type PostStore struct{ *ContentStore }
type ContactStore struct{ *ContentStore }

func (s BannerStore) ByID(ctx context.Context, id string) (*domaincontent.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.banners[id]; ok {
		v := *b
		return &v, nil
	}
	return nil, domaincontent.ErrNotFound
}

func (s BannerStore) Save(ctx context.Context, b *domaincontent.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *b
	s.banners[b.ID] = &v
	return nil
}

func (s BannerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.banners[id]; !ok {
		return domaincontent.ErrNotFound
	}
	delete(s.banners, id)
	return nil
}

func (s BannerStore) List(ctx context.Context, onlyActive bool) ([]*domaincontent.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*domaincontent.Banner
	for _, b := range s.banners {
		if onlyActive && !b.Active {
			continue
		}
		v := *b
		items = append(items, &v)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (s PartnerStore) ByID(ctx context.Context, id string) (*domaincontent.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.partners[id]; ok {
		v := *p
		return &v, nil
	}
	return nil, domaincontent.ErrNotFound
}

func (s PartnerStore) Save(ctx context.Context, p *domaincontent.Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *p
	s.partners[p.ID] = &v
	return nil
}

func (s PartnerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partners[id]; !ok {
		return domaincontent.ErrNotFound
	}
	delete(s.partners, id)
	return nil
}

func (s PartnerStore) List(ctx context.Context) ([]*domaincontent.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*domaincontent.Partner
	for _, p := range s.partners {
		v := *p
		items = append(items, &v)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s LocationStore) ByID(ctx context.Context, id string) (*domaincontent.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.locations[id]; ok {
		v := *l
		return &v, nil
	}
	return nil, domaincontent.ErrNotFound
}

func (s LocationStore) BySlug(ctx context.Context, slug string) (*domaincontent.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.locations {
		if l.Slug == slug {
			v := *l
			return &v, nil
		}
	}
	return nil, domaincontent.ErrNotFound
}

func (s LocationStore) Save(ctx context.Context, l *domaincontent.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *l
	s.locations[l.ID] = &v
	return nil
}

func (s LocationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[id]; !ok {
		return domaincontent.ErrNotFound
	}
	delete(s.locations, id)
	return nil
}

func (s LocationStore) List(ctx context.Context) ([]*domaincontent.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*domaincontent.Location
	for _, l := range s.locations {
		v := *l
		items = append(items, &v)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s PostStore) ByID(ctx context.Context, id string) (*domaincontent.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.posts[id]; ok {
		v := *p
		return &v, nil
	}
	return nil, domaincontent.ErrNotFound
}

func (s PostStore) BySlug(ctx context.Context, slug string) (*domaincontent.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Slug == slug {
			v := *p
			return &v, nil
		}
	}
	return nil, domaincontent.ErrNotFound
}

func (s PostStore) Save(ctx context.Context, p *domaincontent.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *p
	s.posts[p.ID] = &v
	return nil
}

func (s PostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return domaincontent.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s PostStore) List(ctx context.Context, onlyPublished bool) ([]*domaincontent.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*domaincontent.Post
	for _, p := range s.posts {
		if onlyPublished && !p.Published {
			continue
		}
		v := *p
		items = append(items, &v)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s ContactStore) ByID(ctx context.Context, id string) (*domaincontent.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.contacts[id]; ok {
		v := *m
		return &v, nil
	}
	return nil, domaincontent.ErrNotFound
}

func (s ContactStore) Save(ctx context.Context, m *domaincontent.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *m
	s.contacts[m.ID] = &v
	return nil
}

func (s ContactStore) List(ctx context.Context, onlyUnhandled bool) ([]*domaincontent.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*domaincontent.ContactMessage
	for _, m := range s.contacts {
		if onlyUnhandled && m.Handled {
			continue
		}
		v := *m
		items = append(items, &v)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}
