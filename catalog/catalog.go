// Package catalog caches the per-session snapshot of products, stores
// and categories and derives the bounds the browse UI needs.
package catalog

import (
	"context"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// DefaultMaxPrice is the slider ceiling when the catalog is empty.
const DefaultMaxPrice = 1000

// LoadState tracks where the one-time catalog load stands. An explicit
// state avoids the duplicate fetches a "list is empty" guard allows
// under concurrent mounts.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// API is the slice of the gateway the catalog needs.
type API interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
	FetchStores(ctx context.Context) ([]models.Store, error)
	FetchCategories(ctx context.Context) ([]models.Category, error)
}

// Store holds the catalog snapshot.
type Store struct {
	api API

	mu         sync.Mutex
	state      LoadState
	waiters    []chan error
	products   []models.Product
	stores     []models.Store
	categories []models.Category
	tree       []*CategoryNode
}

// NewStore builds an unloaded catalog store.
func NewStore(api API) *Store {
	return &Store{api: api}
}

// Load fetches products, stores and categories once. Concurrent calls
// during an in-flight load wait for its result instead of issuing
// their own. A failed load may be retried by calling Load again.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case Loaded:
		s.mu.Unlock()
		return nil
	case Loading:
		ch := make(chan error, 1)
		s.waiters = append(s.waiters, ch)
		s.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.state = Loading
	s.mu.Unlock()

	err := s.load(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = Failed
	} else {
		s.state = Loaded
	}
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}

func (s *Store) load(ctx context.Context) error {
	products, err := s.api.FetchProducts(ctx)
	if err != nil {
		return err
	}
	stores, err := s.api.FetchStores(ctx)
	if err != nil {
		return err
	}
	categories, err := s.api.FetchCategories(ctx)
	if err != nil {
		return err
	}

	tree, err := BuildCategoryTree(categories)
	if err != nil {
		// A cycle is a data error. Surface it but keep the flat list
		// usable for non-tree views.
		log.Error("Category data is malformed: ", err)
		return err
	}

	s.mu.Lock()
	s.products = products
	s.stores = stores
	s.categories = categories
	s.tree = tree
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"products":   len(products),
		"stores":     len(stores),
		"categories": len(categories),
	}).Info("Catalog loaded")
	return nil
}

// State returns the current load state.
func (s *Store) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Products returns a copy of the product list.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Stores returns a copy of the store list.
func (s *Store) Stores() []models.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Store, len(s.stores))
	copy(out, s.stores)
	return out
}

// Product looks a product up by id.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// CategoryTree returns the root nodes of the category tree.
func (s *Store) CategoryTree() []*CategoryNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// MaxPrice returns the ceiling of the highest product price, for the
// price-range slider. Defaults to DefaultMaxPrice on an empty catalog.
func (s *Store) MaxPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.products) == 0 {
		return DefaultMaxPrice
	}
	max := 0.0
	for _, p := range s.products {
		if p.Price > max {
			max = p.Price
		}
	}
	return math.Ceil(max)
}

// DecrementStock lowers a cached product's stock count after an
// add-to-cart. This is a display-only approximation with no server
// reconciliation; the backend owns the real inventory.
func (s *Store) DecrementStock(productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products[i].Stock -= qty
			if s.products[i].Stock < 0 {
				s.products[i].Stock = 0
			}
			return
		}
	}
}
