// Package invoice contiene la lógica de negocio del formulario de factura:
// validación de campos obligatorios, cálculo de totales y actualización del borrador.
package invoice

import (
	"sort"
	"strconv"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// ErrorMap relaciona el identificador de cada campo inválido con su mensaje.
// Vacío si y solo si el borrador es válido.
type ErrorMap map[string]string

// Valid indica si no hay errores.
func (m ErrorMap) Valid() bool { return len(m) == 0 }

// Keys devuelve las claves ordenadas (útil para logs y respuestas deterministas).
func (m ErrorMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copia en m las entradas de other que aún no existan.
func (m ErrorMap) Merge(other ErrorMap) {
	for k, v := range other {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
}

// requiredField regla "no vacío" sobre un campo de texto.
type requiredField struct {
	key     string
	message string
	value   string
}

// Validate evalúa todas las reglas de obligatoriedad sobre el borrador, sin cortocircuito:
// cada violación queda reportada a la vez. No modifica el borrador.
func Validate(d entity.InvoiceDraft) ErrorMap {
	errs := ErrorMap{}

	rules := []requiredField{
		{"sellerName", "Seller name is required", d.Seller.Name},
		{"sellerAddress", "Seller address is required", d.Seller.Address},
		{"sellerCity", "Seller city is required", d.Seller.City},
		{"sellerState", "Seller state is required", d.Seller.State},
		{"sellerPincode", "Seller pincode is required", d.Seller.Pincode},
		{"sellerPan", "Seller PAN is required", d.Seller.PAN},
		{"sellerGst", "Seller GST is required", d.Seller.GST},

		{"placeOfSupply", "Place of Supply is required", d.PlaceOfSupply},
		{"placeOfDelivery", "Place of Delivery is required", d.PlaceOfDelivery},
	}
	rules = append(rules, partyRules("billing", "Billing", d.Billing)...)
	rules = append(rules, partyRules("shipping", "Shipping", d.Shipping)...)
	rules = append(rules,
		requiredField{"orderNo", "Order No. is required", d.Order.OrderNo},
		requiredField{"orderDate", "Order Date is required", d.Order.OrderDate},
		requiredField{"invoiceNo", "Invoice No. is required", d.Invoice.InvoiceNo},
		requiredField{"invoiceDate", "Invoice Date is required", d.Invoice.InvoiceDate},
	)

	for _, r := range rules {
		if r.value == "" {
			errs[r.key] = r.message
		}
	}

	if !d.HasSignature() {
		errs["signatureImage"] = "Signature image is required"
	}

	for i, item := range d.Items {
		idx := strconv.Itoa(i)
		if item.Description == "" {
			errs["itemDescription"+idx] = "Item description is required"
		}
		if item.UnitPrice == "" {
			errs["itemUnitPrice"+idx] = "Item unit price is required"
		}
		if item.Quantity == "" {
			errs["itemQuantity"+idx] = "Item quantity is required"
		}
		// "" es el centinela de ausencia; "0" es un descuento explícito válido.
		if item.Discount == "" {
			errs["itemDiscount"+idx] = "Item discount is required"
		}
	}

	return errs
}

// partyRules reglas de facturación/envío; las claves llevan el prefijo de la parte.
func partyRules(prefix, label string, p entity.Party) []requiredField {
	return []requiredField{
		{prefix + "Name", label + " name is required", p.Name},
		{prefix + "Address", label + " address is required", p.Address},
		{prefix + "City", label + " city is required", p.City},
		{prefix + "State", label + " state is required", p.State},
		{prefix + "Pincode", label + " pincode is required", p.Pincode},
		{prefix + "Code", label + " State/UT Code is required", p.Code},
	}
}
