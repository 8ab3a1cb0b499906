package entity

import (
	"fmt"
	"time"
)

// InvoiceSequence es una serie de numeración de facturas (consecutivo).
// CurrentNumber guarda siempre el PRÓXIMO número a entregar; los números
// emitidos por una serie son estrictamente crecientes y sin duplicados.
type InvoiceSequence struct {
	ID                 string
	CompanyID          string
	Prefix             string // ej: "FV", "TRE"
	CurrentNumber      int64  // próximo número a entregar (>= 1)
	StartNumber        int64  // primer número autorizado de la serie
	NumberPadding      int    // ancho del relleno con ceros
	IsActive           bool
	IsDefault          bool
	ProviderSeriesCode string // código de la serie en el proveedor externo (opcional)
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FormatNumber arma el número visible: prefijo + número con ceros a la izquierda.
func (s *InvoiceSequence) FormatNumber(n int64) string {
	if s.NumberPadding <= 0 {
		return fmt.Sprintf("%s%d", s.Prefix, n)
	}
	return fmt.Sprintf("%s%0*d", s.Prefix, s.NumberPadding, n)
}
