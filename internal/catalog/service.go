// Package catalog ties the product repository to the observable lists that
// clients watch. Every write refreshes AllProducts; every search publishes to
// SearchResults.
package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rogerio-castellano/product-store/internal/live"
	"github.com/rogerio-castellano/product-store/internal/models"
	"github.com/rogerio-castellano/product-store/internal/redissvc"
	"github.com/rogerio-castellano/product-store/internal/repo"
)

// Notifier fans change events out to other instances.
type Notifier interface {
	Publish(ctx context.Context, e redissvc.ChangeEvent) error
	Subscribe(ctx context.Context, fn func(redissvc.ChangeEvent)) error
}

// backgroundTimeout bounds each asynchronous call.
const backgroundTimeout = 10 * time.Second

type Service struct {
	repo     repo.ProductRepository
	notifier Notifier

	all    *live.List
	search *live.List

	// refreshMu keeps each read of the table paired with its publication.
	refreshMu sync.Mutex

	wg sync.WaitGroup
}

// NewService creates a Service. notifier may be nil.
func NewService(r repo.ProductRepository, notifier Notifier) *Service {
	return &Service{
		repo:     r,
		notifier: notifier,
		all:      live.NewList(),
		search:   live.NewList(),
	}
}

// AllProducts is refreshed after every change to the table.
func (s *Service) AllProducts() *live.List { return s.all }

// SearchResults holds the result of the most recent search.
func (s *Service) SearchResults() *live.List { return s.search }

func (s *Service) Insert(ctx context.Context, name string, quantity int) (models.Product, error) {
	created, err := s.repo.Insert(ctx, models.Product{Name: name, Quantity: quantity})
	if err != nil {
		return models.Product{}, err
	}
	s.changed(ctx, "insert", name)
	return created, nil
}

func (s *Service) Delete(ctx context.Context, m repo.NameMatch) (int, error) {
	n, err := s.repo.Delete(ctx, m)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.changed(ctx, "delete", m.Name)
	}
	return n, nil
}

func (s *Service) FindByNamePrefix(ctx context.Context, prefix string) ([]models.Product, error) {
	found, err := s.repo.FindByNamePrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	s.search.Set(found)
	return found, nil
}

func (s *Service) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Stats(ctx context.Context) (repo.Stats, error) {
	return s.repo.Stats(ctx)
}

// Refresh reloads AllProducts from the repository.
func (s *Service) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	s.all.Set(all)
	return nil
}

// InsertAsync inserts on a background goroutine. Failures are logged.
func (s *Service) InsertAsync(name string, quantity int) {
	s.background("insert", func(ctx context.Context) error {
		_, err := s.Insert(ctx, name, quantity)
		return err
	})
}

// DeleteAsync deletes on a background goroutine. Failures are logged.
func (s *Service) DeleteAsync(m repo.NameMatch) {
	s.background("delete", func(ctx context.Context) error {
		_, err := s.Delete(ctx, m)
		return err
	})
}

// FindAsync searches on a background goroutine and publishes the result to
// SearchResults.
func (s *Service) FindAsync(prefix string) {
	s.background("search", func(ctx context.Context) error {
		_, err := s.FindByNamePrefix(ctx, prefix)
		return err
	})
}

// Wait blocks until every background call has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Listen refreshes AllProducts whenever another instance reports a change.
func (s *Service) Listen(ctx context.Context) error {
	if s.notifier == nil {
		return nil
	}
	return s.notifier.Subscribe(ctx, func(e redissvc.ChangeEvent) {
		if err := s.Refresh(ctx); err != nil {
			log.Printf("refresh after remote %s failed: %v", e.Op, err)
		}
	})
}

func (s *Service) background(op string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Printf("background %s failed: %v", op, err)
		}
	}()
}

// changed runs after a committed write, so it does not inherit the caller's
// cancellation.
func (s *Service) changed(ctx context.Context, op, name string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.Refresh(ctx); err != nil {
		log.Printf("refresh after %s failed: %v", op, err)
	}
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, redissvc.ChangeEvent{Op: op, Name: name}); err != nil {
		log.Printf("publish %s event failed: %v", op, err)
	}
}
