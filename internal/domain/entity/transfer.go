package entity

import "time"

// Estados y tipos de traslado entre sucursales.
const (
	TransferStatusRequested = "REQUESTED"
	TransferStatusPending   = "PENDING"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"

	TransferTypeRequest = "REQUEST" // la sucursal destino solicita mercancía
	TransferTypeSend    = "SEND"    // la sucursal origen decide enviar
)

// Transfer representa un traslado de mercancía entre dos sucursales. Su
// estado es una máquina finita: REQUESTED→PENDING→IN_TRANSIT→COMPLETED, con
// CANCELLED alcanzable desde cualquier estado no terminal. Mientras está
// IN_TRANSIT la mercancía no cuenta en el stock de ninguna sucursal.
type Transfer struct {
	ID           string
	FromBranchID string
	ToBranchID   string
	Type         string // REQUEST, SEND
	Status       string
	Items        []TransferItem
	Notes        string
	RequestedBy  string
	CreatedAt    time.Time
	ApprovedBy   string
	ApprovedAt   *time.Time
	ShippedBy    string
	ShippedAt    *time.Time
	CompletedBy  string
	CompletedAt  *time.Time
	CancelledBy  string
	CancelledAt  *time.Time
}

// TransferItem es una línea del traslado; Quantity en unidades base.
type TransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   int64
}

// InitialTransferStatus deriva el estado inicial del tipo: un REQUEST nace
// REQUESTED (requiere aprobación del destino); un SEND nace PENDING porque
// el emisor ya decidió enviar. Devuelve "" para tipos desconocidos.
func InitialTransferStatus(transferType string) string {
	switch transferType {
	case TransferTypeRequest:
		return TransferStatusRequested
	case TransferTypeSend:
		return TransferStatusPending
	}
	return ""
}

// transferTransitions enumera las transiciones legales de la máquina de
// estados. CANCELLED desde IN_TRANSIT obliga a restaurar el stock de origen.
var transferTransitions = map[string][]string{
	TransferStatusRequested: {TransferStatusPending, TransferStatusCancelled},
	TransferStatusPending:   {TransferStatusInTransit, TransferStatusCancelled},
	TransferStatusInTransit: {TransferStatusCompleted, TransferStatusCancelled},
}

// CanTransition indica si el traslado puede pasar a target desde su estado
// actual. Los estados terminales (COMPLETED, CANCELLED) no tienen salidas.
func (t *Transfer) CanTransition(target string) bool {
	for _, next := range transferTransitions[t.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal indica si el traslado está en un estado terminal.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusCancelled
}

// StockWithdrawn indica si el stock de origen ya fue descontado (se descuenta
// al pasar a IN_TRANSIT). Determina si la cancelación debe restaurarlo.
func (t *Transfer) StockWithdrawn() bool {
	return t.Status == TransferStatusInTransit
}
