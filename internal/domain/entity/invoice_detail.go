package entity

// DefaultTaxRate tarifa de impuesto (%) de un ítem recién agregado.
const DefaultTaxRate = 18.0

// LineItem representa una línea facturable del borrador.
// Los campos numéricos se capturan como texto y se interpretan al calcular totales.
// Discount == "" significa "ausente"; "0" es un valor explícito válido.
type LineItem struct {
	Description string
	UnitPrice   string
	Quantity    string
	Discount    string
	TaxRate     float64 // no editable desde el formulario
}

// NewLineItem crea un ítem vacío con la tarifa indicada.
func NewLineItem(taxRate float64) LineItem {
	return LineItem{TaxRate: taxRate}
}
