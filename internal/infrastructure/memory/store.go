// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory (demos, desarrollo local) y en las pruebas de los casos de uso.
package memory

import (
	"maps"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
// mu protege los datos; txMu serializa las transacciones de TxRunner.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	items     map[string]entity.InventoryItem
	movements []entity.StockMovement
	waste     []entity.WasteLog
	recipes   map[string]entity.Recipe
	users     map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:   make(map[string]entity.InventoryItem),
		recipes: make(map[string]entity.Recipe),
		users:   make(map[string]entity.User),
	}
}

// AddItems carga ítems tal cual (sin validar unicidad). Asigna ID si falta.
func (s *Store) AddItems(items ...entity.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		s.items[it.ID] = it
	}
}

// AddMovements carga movimientos históricos sin tocar el stock de los ítems.
func (s *Store) AddMovements(movements ...entity.StockMovement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movements {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		s.movements = append(s.movements, m)
	}
}

// AddWasteLogs carga registros de merma históricos.
func (s *Store) AddWasteLogs(logs ...entity.WasteLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range logs {
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		s.waste = append(s.waste, w)
	}
}

// AddRecipes carga recetas. El costo de los ingredientes se resuelve al leer.
func (s *Store) AddRecipes(recipes ...entity.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recipes {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		s.recipes[r.ID] = r
	}
}

// snapshot copia el estado mutable por transacciones (ítems, movimientos, mermas).
type snapshot struct {
	items     map[string]entity.InventoryItem
	movements int
	waste     int
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{items: maps.Clone(s.items), movements: len(s.movements), waste: len(s.waste)}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.movements = s.movements[:snap.movements]
	s.waste = s.waste[:snap.waste]
}
