// Package live holds observable values that push every change to their
// subscribers.
package live

import (
	"sync"

	"github.com/rogerio-castellano/product-store/internal/models"
)

// List is an observable list of products. Subscribers receive the current
// value on subscription and every later value. A subscriber that falls behind
// only sees the newest snapshot; publishers never wait for it.
type List struct {
	mu     sync.Mutex
	value  []models.Product
	subs   map[int]chan []models.Product
	nextID int
}

func NewList() *List {
	return &List{
		value: []models.Product{},
		subs:  make(map[int]chan []models.Product),
	}
}

// Set replaces the value and notifies subscribers.
func (l *List) Set(products []models.Product) {
	snapshot := clone(products)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.value = snapshot
	for _, ch := range l.subs {
		offer(ch, clone(snapshot))
	}
}

// Get returns a copy of the current value.
func (l *List) Get() []models.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clone(l.value)
}

// Subscribe returns a channel of snapshots and a cancel func that closes it.
func (l *List) Subscribe() (<-chan []models.Product, func()) {
	ch := make(chan []models.Product, 1)

	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = ch
	ch <- clone(l.value)
	l.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			close(ch)
			l.mu.Unlock()
		})
	}
	return ch, cancel
}

// offer delivers v, replacing a snapshot the subscriber has not read yet.
// Callers hold l.mu, so ch has no other writer.
func offer(ch chan []models.Product, v []models.Product) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}

func clone(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
