package entity

import "time"

// Supplier representa un proveedor de motocicletas. No puede eliminarse
// mientras tenga recibos de compra en elaboración (invariante de negocio
// verificado en el agregado, no por cascada de llaves foráneas).
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si el proveedor fue eliminado (soft delete).
func (s *Supplier) IsDeleted() bool {
	return s.DeletedAt != nil
}
