// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (demo, desarrollo) y en los tests de casos de uso.
//
// Las transacciones se serializan con un único mutex: TxRunner toma el lock, guarda una
// copia del estado y la restaura si la función falla.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/numbering"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

type state struct {
	products map[string]*entity.Product
	clients  map[string]*entity.Client
	orders   map[string]*entity.Order
	sales    map[string]*entity.Sale
	users    map[string]*entity.User
	seq      map[numbering.Kind]int64
}

func newState() *state {
	return &state{
		products: make(map[string]*entity.Product),
		clients:  make(map[string]*entity.Client),
		orders:   make(map[string]*entity.Order),
		sales:    make(map[string]*entity.Sale),
		users:    make(map[string]*entity.User),
		seq:      make(map[numbering.Kind]int64),
	}
}

// clone copia profunda para rollback.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range s.clients {
		c.clients[k] = copyClient(v)
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	return c
}

// access ejecuta fn con el estado. Los repos de una transacción ya tienen el lock.
type access struct {
	store *Store
	inTx  bool
}

func (a access) with(fn func(st *state) error) error {
	if !a.inTx {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}
	return fn(a.store.st)
}

// documentSeq consecutivo de OS-NNNNNN / V-NNNNNN; compara bien pasado 999999.
func documentSeq(number string) int64 {
	_, n, err := numbering.Parse(number)
	if err != nil {
		return 0
	}
	return n
}

// newerFirst más recientes primero; a igual fecha decide el consecutivo.
func newerFirst(aAt, bAt time.Time, aNumber, bNumber string) bool {
	if aAt.Equal(bAt) {
		return documentSeq(aNumber) > documentSeq(bNumber)
	}
	return aAt.After(bAt)
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func copyClient(c *entity.Client) *entity.Client {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Client = nil
	if o.SignedAt != nil {
		t := *o.SignedAt
		c.SignedAt = &t
	}
	c.Items = make([]*entity.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		ic := *it
		if it.ProductID != nil {
			pid := *it.ProductID
			ic.ProductID = &pid
		}
		c.Items = append(c.Items, &ic)
	}
	return &c
}

func copySale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Client = nil
	if s.ClientID != nil {
		id := *s.ClientID
		c.ClientID = &id
	}
	c.Items = make([]*entity.SaleItem, 0, len(s.Items))
	for _, it := range s.Items {
		ic := *it
		ic.Product = nil
		c.Items = append(c.Items, &ic)
	}
	return &c
}
