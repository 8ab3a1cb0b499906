package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas). Los mensajes son aptos para
// mostrarse tal cual al usuario; la capa HTTP los renderiza sin traducir.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrItemNotFound       = errors.New("ítem no encontrado")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrSequenceNotFound   = errors.New("serie de facturación no encontrada")
	ErrSequenceInactive   = errors.New("la serie de facturación está inactiva")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNestedComposite    = errors.New("un componente de la receta es a su vez compuesto")
)

// InsufficientStockError indica saldo insuficiente para una salida.
// Lleva el saldo actual y la cantidad pedida para que el caller arme el reporte.
type InsufficientStockError struct {
	SKU       string
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %s, solicitado %s",
		e.SKU, e.Current.String(), e.Requested.String())
}

// IsInsufficientStock verifica si err (o su cadena) es un InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// ProviderError encapsula el texto de error devuelto por el proveedor de facturación.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("proveedor de facturación: %s", e.Message)
}
