package invoice

import "github.com/jhoicas/invoice-generator/internal/domain/entity"

// LineTotals montos calculados de un ítem.
type LineTotals struct {
	Item        entity.LineItem
	NetAmount   float64
	TaxAmount   float64
	TotalAmount float64
}

// Totals resultado del cálculo: detalle por ítem (en el orden de entrada) y agregados.
type Totals struct {
	Items      []LineTotals
	TotalNet   float64
	TotalTax   float64
	GrandTotal float64
}

// ComputeTotals calcula los montos por ítem y los agregados.
//
//	neto     = precio unitario * cantidad - descuento
//	impuesto = neto * (tarifa / 100)
//	total    = neto + impuesto
//
// No valida ni redondea: un texto no numérico produce NaN y se propaga a los agregados.
// La suma se acumula de izquierda a derecha para que el resultado sea reproducible.
func ComputeTotals(items []entity.LineItem) Totals {
	out := Totals{Items: make([]LineTotals, 0, len(items))}
	var totalNet, totalTax float64

	for _, item := range items {
		net := ParseAmount(item.UnitPrice)*ParseAmount(item.Quantity) - ParseAmount(item.Discount)
		tax := net * (item.TaxRate / 100)
		totalNet += net
		totalTax += tax

		out.Items = append(out.Items, LineTotals{
			Item:        item,
			NetAmount:   net,
			TaxAmount:   tax,
			TotalAmount: net + tax,
		})
	}

	out.TotalNet = totalNet
	out.TotalTax = totalTax
	out.GrandTotal = totalNet + totalTax
	return out
}
