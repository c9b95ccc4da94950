// Package catalog casos de uso del navegador de categorías sobre una foto
// en memoria de categorías y productos.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/anbar/anbar-api/internal/domain/catalog"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
	"github.com/anbar/anbar-api/pkg/logger"
)

// ErrStoreClosed el store ya fue cerrado.
var ErrStoreClosed = errors.New("catalog: store cerrado")

// Metrics observador de eventos del catálogo.
type Metrics interface {
	StoreReloaded(d time.Duration, categories, products int)
	MoveRejected(reason string)
}

type nopMetrics struct{}

func (nopMetrics) StoreReloaded(time.Duration, int, int) {}
func (nopMetrics) MoveRejected(string)                   {}

// Snapshot foto inmutable del catálogo. No modificar sus slices.
type Snapshot struct {
	Index    *catalog.Index
	Products []*entity.Product
	LoadedAt time.Time
}

// Store mantiene la foto del catálogo. Cada escritura la invalida y la
// siguiente lectura recarga todo (sin mutación incremental).
type Store struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	log        *logger.Logger
	metrics    Metrics

	mu     sync.RWMutex
	snap   *Snapshot
	closed bool
}

// NewStore construye el store. metrics puede ser nil.
func NewStore(categories repository.CategoryRepository, products repository.ProductRepository, log *logger.Logger, metrics Metrics) *Store {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{categories: categories, products: products, log: log.Component("catalog_store"), metrics: metrics}
}

// Snapshot devuelve la foto vigente, recargando si fue invalidada.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap, closed := s.snap, s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrStoreClosed
	}
	if snap != nil {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	if s.snap != nil {
		return s.snap, nil
	}
	loaded, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.snap = loaded
	return loaded, nil
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	cats, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: cargar categorías: %w", err)
	}
	prods, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: cargar productos: %w", err)
	}
	elapsed := time.Since(start)
	s.metrics.StoreReloaded(elapsed, len(cats), len(prods))
	s.log.Debug().Int("categories", len(cats)).Int("products", len(prods)).Dur("took", elapsed).Msg("catálogo recargado")
	return &Snapshot{Index: catalog.NewIndex(cats), Products: prods, LoadedAt: time.Now()}, nil
}

// Warm carga la foto al arrancar.
func (s *Store) Warm(ctx context.Context) error {
	_, err := s.Snapshot(ctx)
	return err
}

// Invalidate descarta la foto; la próxima lectura recarga.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// Close libera la foto y rechaza lecturas posteriores.
func (s *Store) Close() {
	s.mu.Lock()
	s.snap = nil
	s.closed = true
	s.mu.Unlock()
}
