package entity

// OrderInfo datos del pedido asociado.
type OrderInfo struct {
	OrderNo   string
	OrderDate string // fecha ISO (YYYY-MM-DD)
}

// InvoiceInfo numeración y fecha de la factura.
type InvoiceInfo struct {
	InvoiceNo   string
	InvoiceDate string // fecha ISO (YYYY-MM-DD)
}

// SignatureImage imagen de firma cargada por el usuario.
// PreviewURI es la representación mostrable (data URI).
type SignatureImage struct {
	Data       []byte
	MIMEType   string
	FileName   string
	PreviewURI string
}

// InvoiceDraft es el agregado raíz: la factura en edición antes de finalizar.
// Se trata como valor inmutable; las modificaciones producen un borrador nuevo.
type InvoiceDraft struct {
	Seller          Party
	PlaceOfSupply   string
	Billing         Party
	Shipping        Party
	PlaceOfDelivery string
	Order           OrderInfo
	Invoice         InvoiceInfo
	ReverseCharge   bool
	Items           []LineItem
	Signature       *SignatureImage
}

// NewInvoiceDraft crea el borrador vacío de inicio de sesión, con un único ítem vacío.
func NewInvoiceDraft(defaultTaxRate float64) InvoiceDraft {
	return InvoiceDraft{Items: []LineItem{NewLineItem(defaultTaxRate)}}
}

// HasSignature indica si hay una imagen de firma asignada (no basta con un string no vacío).
func (d InvoiceDraft) HasSignature() bool {
	return d.Signature != nil && len(d.Signature.Data) > 0
}

// Clone devuelve una copia cuyo slice de ítems no comparte memoria con el original.
// Los bytes de la firma se comparten: nunca se modifican in situ.
func (d InvoiceDraft) Clone() InvoiceDraft {
	out := d
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}
