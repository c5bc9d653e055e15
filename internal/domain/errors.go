package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los
// devuelven como resultados esperados de negocio; la capa HTTP los mapea a
// códigos de cliente. Solo ErrConcurrencyConflict es reintentable.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInsufficientStock: la cantidad pedida supera la suma de remanentes
	// de los lotes disponibles de la variante. Corregible por el usuario.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrInvalidTransition: el estado destino no es alcanzable desde el
	// estado actual (lista blanca de transiciones).
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// ErrAlreadyFinalized: se intentó mutar un recibo u orden ya congelado.
	ErrAlreadyFinalized = errors.New("el documento ya fue finalizado")

	// ErrConcurrencyConflict: contención de bloqueo/versión. Transitorio;
	// el caller puede reintentar la operación completa.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")

	// ErrReferentialBlock: la operación rompería un invariante referencial
	// (ej. borrar un proveedor con recibos en elaboración).
	ErrReferentialBlock = errors.New("operación bloqueada por referencias activas")
)
