package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleCajero    = "cajero"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario del sistema, asignado a una sucursal.
type User struct {
	ID           string
	BranchID     string
	Name         string
	Email        string
	PasswordHash string
	Role         string // admin, cajero, bodeguero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
