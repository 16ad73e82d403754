package memory

import (
	"fmt"
	"time"

	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var (
	_ repository.StockRepository          = (*StockRepo)(nil)
	_ repository.SaleRepository           = (*SaleRepo)(nil)
	_ repository.PurchaseRepository       = (*PurchaseRepo)(nil)
	_ repository.CreditAccountRepository  = (*CreditAccountRepo)(nil)
	_ repository.CreditPaymentRepository  = (*CreditPaymentRepo)(nil)
	_ repository.CashMovementRepository   = (*CashMovementRepo)(nil)
	_ repository.CustomerRepository       = (*CustomerRepo)(nil)
	_ repository.TransferRepository       = (*TransferRepo)(nil)
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.SupplierRepository       = (*SupplierRepo)(nil)
	_ repository.BranchRepository         = (*BranchRepo)(nil)
	_ repository.UnitConversionRepository = (*UnitConversionRepo)(nil)
	_ repository.UserRepository           = (*UserRepo)(nil)
)

// StockRepo adaptador de stock en memoria.
type StockRepo struct{ s *Store }

// NewStockRepository construye el adaptador.
func NewStockRepository(s *Store) *StockRepo { return &StockRepo{s: s} }

// Get devuelve la fila o una fila en cero si el par no existe (creación
// perezosa, igual que el adaptador de PostgreSQL).
func (r *StockRepo) Get(productID, branchID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.stocks[stockKey(productID, branchID)]; ok {
		return &st, nil
	}
	return &entity.Stock{ProductID: productID, BranchID: branchID}, nil
}

// GetForUpdate en memoria equivale a Get: la transacción entera está
// serializada por el runner.
func (r *StockRepo) GetForUpdate(productID, branchID string) (*entity.Stock, error) {
	return r.Get(productID, branchID)
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks[stockKey(stock.ProductID, stock.BranchID)] = *stock
	return nil
}

func (r *StockRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Stock
	for _, st := range r.s.stocks {
		if st.BranchID == branchID {
			cp := st
			result = append(result, &cp)
		}
	}
	return result, nil
}

// SaleRepo adaptador de ventas en memoria.
type SaleRepo struct{ s *Store }

// NewSaleRepository construye el adaptador.
func NewSaleRepository(s *Store) *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale, ok := r.s.sales[id]; ok {
		return &sale, nil
	}
	return nil, nil
}

func (r *SaleRepo) UpdateStatus(id, status, cancelledBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return fmt.Errorf("update sale status: venta %s no existe", id)
	}
	sale.Status = status
	if status == entity.SaleStatusCancelled {
		now := time.Now()
		sale.CancelledBy = cancelledBy
		sale.CancelledAt = &now
	}
	r.s.sales[id] = sale
	return nil
}

func (r *SaleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.BranchID == branchID {
			cp := sale
			result = append(result, &cp)
		}
	}
	return result, nil
}

// PurchaseRepo adaptador de compras en memoria.
type PurchaseRepo struct{ s *Store }

// NewPurchaseRepository construye el adaptador.
func NewPurchaseRepository(s *Store) *PurchaseRepo { return &PurchaseRepo{s: s} }

func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.purchases[purchase.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.purchases[purchase.ID] = *purchase
	return nil
}

func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.purchases[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *PurchaseRepo) UpdateStatus(id, status, cancelledBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return fmt.Errorf("update purchase status: compra %s no existe", id)
	}
	p.Status = status
	if status == entity.PurchaseStatusCancelled {
		now := time.Now()
		p.CancelledBy = cancelledBy
		p.CancelledAt = &now
	}
	r.s.purchases[id] = p
	return nil
}

func (r *PurchaseRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Purchase
	for _, p := range r.s.purchases {
		if p.BranchID == branchID {
			cp := p
			result = append(result, &cp)
		}
	}
	return result, nil
}

// CreditAccountRepo adaptador de cuentas de crédito en memoria.
type CreditAccountRepo struct{ s *Store }

// NewCreditAccountRepository construye el adaptador.
func NewCreditAccountRepository(s *Store) *CreditAccountRepo { return &CreditAccountRepo{s: s} }

func (r *CreditAccountRepo) Create(account *entity.CreditAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[account.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.accounts[account.ID] = *account
	return nil
}

func (r *CreditAccountRepo) GetByID(id string) (*entity.CreditAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *CreditAccountRepo) GetByIDForUpdate(id string) (*entity.CreditAccount, error) {
	return r.GetByID(id)
}

func (r *CreditAccountRepo) GetByTransaction(transactionID string) (*entity.CreditAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.TransactionID == transactionID {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CreditAccountRepo) UpdateAmounts(account *entity.CreditAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[account.ID]; !ok {
		return fmt.Errorf("update credit account: cuenta %s no existe", account.ID)
	}
	r.s.accounts[account.ID] = *account
	return nil
}

func (r *CreditAccountRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.accounts, id)
	return nil
}

func (r *CreditAccountRepo) ListByCounterparty(counterpartyID string, onlyOpen bool) ([]*entity.CreditAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.CreditAccount
	for _, a := range r.s.accounts {
		if a.CounterpartyID != counterpartyID {
			continue
		}
		if onlyOpen && a.Status == entity.CreditStatusPagado {
			continue
		}
		cp := a
		result = append(result, &cp)
	}
	return result, nil
}

// CreditPaymentRepo adaptador de abonos en memoria.
type CreditPaymentRepo struct{ s *Store }

// NewCreditPaymentRepository construye el adaptador.
func NewCreditPaymentRepository(s *Store) *CreditPaymentRepo { return &CreditPaymentRepo{s: s} }

func (r *CreditPaymentRepo) Create(payment *entity.CreditPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[payment.ID] = *payment
	return nil
}

func (r *CreditPaymentRepo) ListByAccount(creditAccountID string) ([]*entity.CreditPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.CreditPayment
	for _, p := range r.s.payments {
		if p.CreditAccountID == creditAccountID {
			cp := p
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *CreditPaymentRepo) CountByAccount(creditAccountID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, p := range r.s.payments {
		if p.CreditAccountID == creditAccountID {
			count++
		}
	}
	return count, nil
}

// CashMovementRepo adaptador del libro de caja en memoria (append-only).
type CashMovementRepo struct{ s *Store }

// NewCashMovementRepository construye el adaptador.
func NewCashMovementRepository(s *Store) *CashMovementRepo { return &CashMovementRepo{s: s} }

func (r *CashMovementRepo) Create(movement *entity.CashMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

// GetByReference devuelve el primer movimiento que referencia la transacción
// (el libro se recorre en orden de registro).
func (r *CashMovementRepo) GetByReference(referenceID string) (*entity.CashMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ReferenceID == referenceID {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CashMovementRepo) ListByBranch(branchID string, filters repository.CashMovementFilters) ([]*entity.CashMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.CashMovement
	for _, m := range r.s.movements {
		if m.BranchID != branchID {
			continue
		}
		if filters.Type != "" && m.Type != filters.Type {
			continue
		}
		if filters.Category != "" && m.Category != filters.Category {
			continue
		}
		if filters.From != nil && m.CreatedAt.Before(*filters.From) {
			continue
		}
		if filters.To != nil && !m.CreatedAt.Before(*filters.To) {
			continue
		}
		cp := m
		result = append(result, &cp)
	}
	return result, nil
}

func (r *CashMovementRepo) BalanceByBranch(branchID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var balance int64
	for _, m := range r.s.movements {
		if m.BranchID != branchID {
			continue
		}
		balance += m.SignedAmount()
	}
	return balance, nil
}

// CustomerRepo adaptador de clientes en memoria.
type CustomerRepo struct{ s *Store }

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.TaxID == customer.TaxID {
			return domain.ErrDuplicate
		}
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CustomerRepo) GetByTaxID(taxID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.TaxID == taxID {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) Update(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.customers[customer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// La deuda solo se mueve por AdjustDebt.
	updated := *customer
	updated.CurrentDebtCents = existing.CurrentDebtCents
	r.s.customers[customer.ID] = updated
	return nil
}

func (r *CustomerRepo) AdjustDebt(id string, deltaCents int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentDebtCents += deltaCents
	r.s.customers[id] = c
	return nil
}

func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Customer
	for _, c := range r.s.customers {
		cp := c
		result = append(result, &cp)
	}
	return result, nil
}

// TransferRepo adaptador de traslados en memoria.
type TransferRepo struct{ s *Store }

// NewTransferRepository construye el adaptador.
func NewTransferRepository(s *Store) *TransferRepo { return &TransferRepo{s: s} }

func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[transfer.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.transfers[transfer.ID] = *transfer
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.transfers[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[transfer.ID]; !ok {
		return fmt.Errorf("update transfer status: traslado %s no existe", transfer.ID)
	}
	r.s.transfers[transfer.ID] = *transfer
	return nil
}

func (r *TransferRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Transfer
	for _, t := range r.s.transfers {
		if t.FromBranchID == branchID || t.ToBranchID == branchID {
			cp := t
			result = append(result, &cp)
		}
	}
	return result, nil
}

// ProductRepo adaptador del catálogo en memoria.
type ProductRepo struct{ s *Store }

// NewProductRepository construye el adaptador.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Product
	for _, p := range r.s.products {
		cp := p
		result = append(result, &cp)
	}
	return result, nil
}

// SupplierRepo adaptador de proveedores en memoria.
type SupplierRepo struct{ s *Store }

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sp := range r.s.suppliers {
		if sp.TaxID == supplier.TaxID {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp, ok := r.s.suppliers[id]; ok {
		return &sp, nil
	}
	return nil, nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Supplier
	for _, sp := range r.s.suppliers {
		cp := sp
		result = append(result, &cp)
	}
	return result, nil
}

// BranchRepo adaptador de sucursales en memoria.
type BranchRepo struct{ s *Store }

// NewBranchRepository construye el adaptador.
func NewBranchRepository(s *Store) *BranchRepo { return &BranchRepo{s: s} }

func (r *BranchRepo) Create(branch *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.branches[branch.ID] = *branch
	return nil
}

func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.branches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *BranchRepo) Update(branch *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.branches[branch.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.branches[branch.ID] = *branch
	return nil
}

func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Branch
	for _, b := range r.s.branches {
		cp := b
		result = append(result, &cp)
	}
	return result, nil
}

// UnitConversionRepo adaptador de unidades registradas en memoria.
type UnitConversionRepo struct{ s *Store }

// NewUnitConversionRepository construye el adaptador.
func NewUnitConversionRepository(s *Store) *UnitConversionRepo { return &UnitConversionRepo{s: s} }

func (r *UnitConversionRepo) Create(conversion *entity.UnitConversion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := conversionKey(conversion.ProductID, conversion.UnitID)
	if _, ok := r.s.conversions[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.conversions[key] = *conversion
	return nil
}

func (r *UnitConversionRepo) Get(productID, unitID string) (*entity.UnitConversion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.conversions[conversionKey(productID, unitID)]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *UnitConversionRepo) ListByProduct(productID string) ([]*entity.UnitConversion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.UnitConversion
	for _, c := range r.s.conversions {
		if c.ProductID == productID {
			cp := c
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *UnitConversionRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, c := range r.s.conversions {
		if c.ID == id {
			delete(r.s.conversions, key)
			return nil
		}
	}
	return domain.ErrNotFound
}

// UserRepo adaptador de usuarios en memoria.
type UserRepo struct{ s *Store }

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}
