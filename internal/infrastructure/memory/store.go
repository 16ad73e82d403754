// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con transacciones por snapshot. Respalda los tests de los motores
// transaccionales sin necesidad de PostgreSQL.
package memory

import (
	"sync"

	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// Store contiene el estado compartido. Las entidades se guardan por valor:
// los repos devuelven copias, igual que un driver de verdad, de modo que una
// mutación del caso de uso no toca el estado hasta el Upsert/Update.
type Store struct {
	mu sync.Mutex

	stocks      map[string]entity.Stock // productID|branchID
	sales       map[string]entity.Sale
	purchases   map[string]entity.Purchase
	accounts    map[string]entity.CreditAccount
	payments    map[string]entity.CreditPayment
	movements   []entity.CashMovement // append-only, en orden de registro
	customers   map[string]entity.Customer
	transfers   map[string]entity.Transfer
	products    map[string]entity.Product
	suppliers   map[string]entity.Supplier
	branches    map[string]entity.Branch
	conversions map[string]entity.UnitConversion // productID|unitID
	users       map[string]entity.User
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		stocks:      make(map[string]entity.Stock),
		sales:       make(map[string]entity.Sale),
		purchases:   make(map[string]entity.Purchase),
		accounts:    make(map[string]entity.CreditAccount),
		payments:    make(map[string]entity.CreditPayment),
		customers:   make(map[string]entity.Customer),
		transfers:   make(map[string]entity.Transfer),
		products:    make(map[string]entity.Product),
		suppliers:   make(map[string]entity.Supplier),
		branches:    make(map[string]entity.Branch),
		conversions: make(map[string]entity.UnitConversion),
		users:       make(map[string]entity.User),
	}
}

func stockKey(productID, branchID string) string { return productID + "|" + branchID }

func conversionKey(productID, unitID string) string { return productID + "|" + unitID }

// snapshot copia el estado completo para poder revertir una transacción.
// Los slices internos de las entidades (líneas de venta/compra/traslado) son
// inmutables tras el Create, así que la copia por valor alcanza.
func (s *Store) snapshot() *Store {
	snap := NewStore()
	for k, v := range s.stocks {
		snap.stocks[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	for k, v := range s.purchases {
		snap.purchases[k] = v
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	snap.movements = append([]entity.CashMovement(nil), s.movements...)
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.transfers {
		snap.transfers[k] = v
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.suppliers {
		snap.suppliers[k] = v
	}
	for k, v := range s.branches {
		snap.branches[k] = v
	}
	for k, v := range s.conversions {
		snap.conversions[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

// restore reemplaza el estado por el del snapshot.
func (s *Store) restore(snap *Store) {
	s.stocks = snap.stocks
	s.sales = snap.sales
	s.purchases = snap.purchases
	s.accounts = snap.accounts
	s.payments = snap.payments
	s.movements = snap.movements
	s.customers = snap.customers
	s.transfers = snap.transfers
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.branches = snap.branches
	s.conversions = snap.conversions
	s.users = snap.users
}

// Seed helpers para tests y arranque local.

// SeedBranch inserta una sucursal.
func (s *Store) SeedBranch(b entity.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[b.ID] = b
}

// SeedProduct inserta un producto.
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SeedCustomer inserta un cliente.
func (s *Store) SeedCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

// SeedSupplier inserta un proveedor.
func (s *Store) SeedSupplier(sp entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sp.ID] = sp
}

// SeedStock fija la existencia de un producto en una sucursal.
func (s *Store) SeedStock(st entity.Stock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks[stockKey(st.ProductID, st.BranchID)] = st
}

// SeedConversion registra una unidad de conversión.
func (s *Store) SeedConversion(c entity.UnitConversion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions[conversionKey(c.ProductID, c.UnitID)] = c
}

// SeedAccount inserta una cuenta de crédito.
func (s *Store) SeedAccount(a entity.CreditAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
}
