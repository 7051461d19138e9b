// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORE_DRIVER=memory (demo local) y en los tests de casos de uso y handlers.
package memory

import (
	"sync"

	"github.com/deeptec/tenders-api/internal/domain/entity"
)

// Store datos compartidos por los repositorios en memoria.
// txMu serializa las transacciones de proyectos (equivale al bloqueo de fila de Postgres);
// mu protege los mapas.
type Store struct {
	txMu     sync.Mutex
	mu       sync.RWMutex
	projects map[string]*entity.Project
	users    map[string]*entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		projects: make(map[string]*entity.Project),
		users:    make(map[string]*entity.User),
	}
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Permissions != nil {
		p := *u.Permissions
		c.Permissions = &p
	}
	if u.ResetCodeExpiresAt != nil {
		t := *u.ResetCodeExpiresAt
		c.ResetCodeExpiresAt = &t
	}
	return &c
}
