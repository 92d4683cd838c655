package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// Action es un evento de edición aplicado al borrador mediante Reduce.
type Action interface {
	apply(d *entity.InvoiceDraft) error
}

// SetField cambia un campo identificado por su ruta, p. ej. "sellerDetails.name".
type SetField struct {
	Path  string
	Value string
}

// SetItemField cambia un campo del ítem en la posición Index.
type SetItemField struct {
	Index int
	Field string
	Value string
}

// AddItem agrega al final un ítem vacío con la tarifa TaxRate.
type AddItem struct {
	TaxRate float64
}

// SetSignature asigna la imagen de firma.
type SetSignature struct {
	Image *entity.SignatureImage
}

// ClearSignature quita la imagen de firma.
type ClearSignature struct{}

// Reduce aplica la acción sobre una copia del borrador y devuelve el borrador nuevo.
// El borrador de entrada nunca se modifica; ante error se devuelve el original.
func Reduce(d entity.InvoiceDraft, a Action) (entity.InvoiceDraft, error) {
	next := d.Clone()
	if err := a.apply(&next); err != nil {
		return d, err
	}
	return next, nil
}

func (a SetField) apply(d *entity.InvoiceDraft) error {
	if a.Path == "reverseCharge" {
		v, err := strconv.ParseBool(a.Value)
		if err != nil {
			return fmt.Errorf("%w: reverseCharge=%q", domain.ErrInvalidInput, a.Value)
		}
		d.ReverseCharge = v
		return nil
	}
	target := fieldRef(d, a.Path)
	if target == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownField, a.Path)
	}
	*target = a.Value
	return nil
}

// fieldRef resuelve la ruta de un campo de texto del borrador.
func fieldRef(d *entity.InvoiceDraft, path string) *string {
	switch path {
	case "placeOfSupply":
		return &d.PlaceOfSupply
	case "placeOfDelivery":
		return &d.PlaceOfDelivery

	case "sellerDetails.name":
		return &d.Seller.Name
	case "sellerDetails.address":
		return &d.Seller.Address
	case "sellerDetails.city":
		return &d.Seller.City
	case "sellerDetails.state":
		return &d.Seller.State
	case "sellerDetails.pincode":
		return &d.Seller.Pincode
	case "sellerDetails.pan":
		return &d.Seller.PAN
	case "sellerDetails.gst":
		return &d.Seller.GST

	case "orderDetails.orderNo":
		return &d.Order.OrderNo
	case "orderDetails.orderDate":
		return &d.Order.OrderDate
	case "invoiceDetails.invoiceNo":
		return &d.Invoice.InvoiceNo
	case "invoiceDetails.invoiceDate":
		return &d.Invoice.InvoiceDate
	}

	if f, ok := strings.CutPrefix(path, "billingDetails."); ok {
		return counterpartyField(&d.Billing, f)
	}
	if f, ok := strings.CutPrefix(path, "shippingDetails."); ok {
		return counterpartyField(&d.Shipping, f)
	}
	return nil
}

func counterpartyField(p *entity.Party, field string) *string {
	switch field {
	case "name":
		return &p.Name
	case "address":
		return &p.Address
	case "city":
		return &p.City
	case "state":
		return &p.State
	case "pincode":
		return &p.Pincode
	case "code":
		return &p.Code
	}
	return nil
}

func (a SetItemField) apply(d *entity.InvoiceDraft) error {
	if a.Index < 0 || a.Index >= len(d.Items) {
		return fmt.Errorf("%w: %d (ítems: %d)", domain.ErrItemOutOfRange, a.Index, len(d.Items))
	}
	item := &d.Items[a.Index]
	switch a.Field {
	case "description":
		item.Description = a.Value
	case "unitPrice":
		item.UnitPrice = a.Value
	case "quantity":
		item.Quantity = a.Value
	case "discount":
		item.Discount = a.Value
	case "taxRate":
		return fmt.Errorf("%w: taxRate", domain.ErrReadOnlyField)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownField, a.Field)
	}
	return nil
}

func (a AddItem) apply(d *entity.InvoiceDraft) error {
	d.Items = append(d.Items, entity.NewLineItem(a.TaxRate))
	return nil
}

func (a SetSignature) apply(d *entity.InvoiceDraft) error {
	if a.Image == nil || len(a.Image.Data) == 0 {
		return domain.ErrInvalidImage
	}
	d.Signature = a.Image
	return nil
}

func (ClearSignature) apply(d *entity.InvoiceDraft) error {
	d.Signature = nil
	return nil
}
