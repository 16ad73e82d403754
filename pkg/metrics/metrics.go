package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de operaciones del motor transaccional. Se exponen en /metrics.
var (
	SalesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestion_sales_total",
			Help: "Ventas creadas, por tipo (CASH/CREDIT)",
		},
		[]string{"type"},
	)
	SalesCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gestion_sales_cancelled_total",
			Help: "Ventas canceladas",
		},
	)
	PurchasesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestion_purchases_total",
			Help: "Compras registradas, por tipo (CASH/CREDIT)",
		},
		[]string{"type"},
	)
	PurchasesCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gestion_purchases_cancelled_total",
			Help: "Compras canceladas",
		},
	)
	CreditPaymentsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestion_credit_payments_total",
			Help: "Abonos aplicados, por tipo de cuenta (CXC/CPP)",
		},
		[]string{"account_type"},
	)
	TransferTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestion_transfer_transitions_total",
			Help: "Transiciones de traslados, por estado destino",
		},
		[]string{"to_status"},
	)
	LedgerInconsistencies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gestion_ledger_inconsistencies_total",
			Help: "Condiciones de ledger inconsistente detectadas",
		},
	)
)
