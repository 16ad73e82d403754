package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// ErrInvalidState: la operación no es legal en el estado actual del registro.
	ErrInvalidState = errors.New("operación no permitida en el estado actual")

	// Motor transaccional (ventas, compras, traslados, créditos).
	ErrInsufficientStock            = errors.New("stock insuficiente")
	ErrStockInsufficientForReversal = errors.New("stock insuficiente para revertir la operación")
	ErrOverpayment                  = errors.New("el abono excede el saldo pendiente")
	ErrUnitNotFound                 = errors.New("unidad no registrada para el producto")
	ErrInvalidQuantity              = errors.New("cantidad inválida")

	// ErrInconsistentLedger: condición fatal. Una escritura compensatoria no pudo
	// aplicarse después de que una escritura previa ya fue confirmada. Requiere
	// reconciliación manual; nunca se reintenta automáticamente.
	ErrInconsistentLedger = errors.New("ledger inconsistente: requiere reconciliación manual")
)

// Subcasos de ErrInvalidState. Se comparan con errors.Is: cada uno también
// satisface errors.Is(err, ErrInvalidState).
var (
	ErrAlreadyCancelled  = stateError{"el registro ya fue cancelado"}
	ErrAlreadySettled    = stateError{"la cuenta ya está pagada"}
	ErrInvalidTransition = stateError{"transición de estado no permitida"}
	ErrPaymentsApplied   = stateError{"la cuenta tiene abonos aplicados"}
)

type stateError struct{ msg string }

func (e stateError) Error() string { return e.msg }

// Is hace que todo stateError sea también ErrInvalidState.
func (e stateError) Is(target error) bool { return target == ErrInvalidState }
