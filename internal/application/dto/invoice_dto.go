package dto

import "time"

// SellerDTO datos del vendedor. Los nombres JSON coinciden con las rutas de campo
// del formulario (sellerDetails.name, sellerDetails.pan, ...).
type SellerDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	PAN     string `json:"pan"`
	GST     string `json:"gst"`
}

// CounterpartyDTO datos de facturación o envío.
type CounterpartyDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Code    string `json:"code"` // código de estado/UT
}

// OrderDetailsDTO número y fecha de pedido.
type OrderDetailsDTO struct {
	OrderNo   string `json:"orderNo"`
	OrderDate string `json:"orderDate"`
}

// InvoiceDetailsDTO número y fecha de factura.
type InvoiceDetailsDTO struct {
	InvoiceNo   string `json:"invoiceNo"`
	InvoiceDate string `json:"invoiceDate"`
}

// LineItemDTO ítem tal como se captura: los montos son texto.
type LineItemDTO struct {
	Description string  `json:"description"`
	UnitPrice   string  `json:"unitPrice"`
	Quantity    string  `json:"quantity"`
	Discount    string  `json:"discount"`
	TaxRate     float64 `json:"taxRate"` // solo lectura
}

// SignatureDTO metadatos de la firma; la vista previa es un data URI.
type SignatureDTO struct {
	FileName   string `json:"fileName,omitempty"`
	MIMEType   string `json:"mimeType"`
	Size       int    `json:"size"`
	PreviewURI string `json:"previewUri"`
}

// InvoiceDraftDTO borrador completo en respuestas.
type InvoiceDraftDTO struct {
	SellerDetails   SellerDTO         `json:"sellerDetails"`
	PlaceOfSupply   string            `json:"placeOfSupply"`
	BillingDetails  CounterpartyDTO   `json:"billingDetails"`
	ShippingDetails CounterpartyDTO   `json:"shippingDetails"`
	PlaceOfDelivery string            `json:"placeOfDelivery"`
	OrderDetails    OrderDetailsDTO   `json:"orderDetails"`
	InvoiceDetails  InvoiceDetailsDTO `json:"invoiceDetails"`
	ReverseCharge   bool              `json:"reverseCharge"`
	Items           []LineItemDTO     `json:"items"`
	SignatureImage  *SignatureDTO     `json:"signatureImage"`
}

// InvoiceDraftRequest borrador completo para los endpoints sin sesión
// (POST /api/invoices/validate y /api/invoices/totals).
// SignatureImage es un data URI ("data:image/png;base64,...") o vacío.
type InvoiceDraftRequest struct {
	SellerDetails   SellerDTO         `json:"sellerDetails"`
	PlaceOfSupply   string            `json:"placeOfSupply"`
	BillingDetails  CounterpartyDTO   `json:"billingDetails"`
	ShippingDetails CounterpartyDTO   `json:"shippingDetails"`
	PlaceOfDelivery string            `json:"placeOfDelivery"`
	OrderDetails    OrderDetailsDTO   `json:"orderDetails"`
	InvoiceDetails  InvoiceDetailsDTO `json:"invoiceDetails"`
	ReverseCharge   bool              `json:"reverseCharge"`
	Items           []LineItemDTO     `json:"items"`
	SignatureImage  string            `json:"signatureImage"`
}

// FieldChangeRequest body para PATCH /api/sessions/:id/fields.
type FieldChangeRequest struct {
	Path  string `json:"path"` // p. ej. "billingDetails.pincode"
	Value string `json:"value"`
}

// ItemFieldChangeRequest body para PATCH /api/sessions/:id/items/:index.
type ItemFieldChangeRequest struct {
	Field string `json:"field"` // description, unitPrice, quantity, discount
	Value string `json:"value"`
}

// SessionResponse estado de una sesión de edición.
type SessionResponse struct {
	ID          string          `json:"id"`
	State       string          `json:"state"` // EDITING | FINALIZED
	Exporting   bool            `json:"exporting"`
	Draft       InvoiceDraftDTO `json:"draft"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	FinalizedAt *time.Time      `json:"finalizedAt,omitempty"`
}

// ValidationResponse resultado de validar: errors vacío si y solo si valid.
type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// LineTotalsDTO ítem con sus montos calculados.
type LineTotalsDTO struct {
	LineItemDTO
	NetAmount   Amount `json:"netAmount"`
	TaxAmount   Amount `json:"taxAmount"`
	TotalAmount Amount `json:"totalAmount"`
}

// TotalsResponse totales por ítem y agregados.
type TotalsResponse struct {
	Items          []LineTotalsDTO `json:"items"`
	TotalNetAmount Amount          `json:"totalNetAmount"`
	TotalTaxAmount Amount          `json:"totalTaxAmount"`
	GrandTotal     Amount          `json:"grandTotal"`
}

// InvoiceViewResponse factura generada (sesión finalizada).
type InvoiceViewResponse struct {
	SessionID   string          `json:"sessionId"`
	Draft       InvoiceDraftDTO `json:"draft"`
	Totals      TotalsResponse  `json:"totals"`
	FinalizedAt *time.Time      `json:"finalizedAt,omitempty"`
}
