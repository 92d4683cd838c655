package invoice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

func TestReduce_SetFieldRutas(t *testing.T) {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)
	events := map[string]string{
		"sellerDetails.name":         "Acme",
		"sellerDetails.gst":          "27AAA",
		"billingDetails.code":        "19",
		"shippingDetails.city":       "Kolkata",
		"orderDetails.orderDate":     "2024-03-01",
		"invoiceDetails.invoiceNo":   "INV-9",
		"placeOfSupply":              "MH",
		"placeOfDelivery":            "WB",
		"reverseCharge":              "true",
		"invoiceDetails.invoiceDate": "2024-03-02",
	}
	var err error
	for path, value := range events {
		d, err = invoice.Reduce(d, invoice.SetField{Path: path, Value: value})
		require.NoError(t, err, path)
	}

	assert.Equal(t, "Acme", d.Seller.Name)
	assert.Equal(t, "27AAA", d.Seller.GST)
	assert.Equal(t, "19", d.Billing.Code)
	assert.Equal(t, "Kolkata", d.Shipping.City)
	assert.Equal(t, "2024-03-01", d.Order.OrderDate)
	assert.Equal(t, "INV-9", d.Invoice.InvoiceNo)
	assert.Equal(t, "MH", d.PlaceOfSupply)
	assert.Equal(t, "WB", d.PlaceOfDelivery)
	assert.True(t, d.ReverseCharge)
}

func TestReduce_RutaDesconocida(t *testing.T) {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)
	for _, path := range []string{"sellerDetails.code", "billingDetails.pan", "nope", "billingDetails."} {
		_, err := invoice.Reduce(d, invoice.SetField{Path: path, Value: "x"})
		assert.ErrorIs(t, err, domain.ErrUnknownField, path)
	}
}

func TestReduce_NoModificaElOriginal(t *testing.T) {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)

	next, err := invoice.Reduce(d, invoice.SetItemField{Index: 0, Field: "description", Value: "Widget"})
	require.NoError(t, err)

	assert.Equal(t, "", d.Items[0].Description, "el borrador original no debe cambiar")
	assert.Equal(t, "Widget", next.Items[0].Description)
}

func TestReduce_AddItemAgregaExactamenteUno(t *testing.T) {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)
	d, _ = invoice.Reduce(d, invoice.SetItemField{Index: 0, Field: "unitPrice", Value: "100"})
	d, _ = invoice.Reduce(d, invoice.SetItemField{Index: 0, Field: "discount", Value: "0"})
	before := d.Clone()

	next, err := invoice.Reduce(d, invoice.AddItem{TaxRate: entity.DefaultTaxRate})
	require.NoError(t, err)

	require.Len(t, next.Items, len(before.Items)+1)
	assert.Equal(t, before.Items, next.Items[:len(before.Items)], "los ítems existentes no cambian")
	assert.Equal(t, entity.LineItem{TaxRate: 18}, next.Items[len(next.Items)-1])
}

func TestReduce_AddItemConservaLaFirma(t *testing.T) {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)
	sig := &entity.SignatureImage{Data: []byte("png")}
	d, err := invoice.Reduce(d, invoice.SetSignature{Image: sig})
	require.NoError(t, err)

	d, err = invoice.Reduce(d, invoice.AddItem{TaxRate: 18})
	require.NoError(t, err)
	assert.True(t, d.HasSignature())
}

func TestReduce_ItemFieldErrores(t *testing.T) {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)

	_, err := invoice.Reduce(d, invoice.SetItemField{Index: 0, Field: "taxRate", Value: "5"})
	assert.ErrorIs(t, err, domain.ErrReadOnlyField)

	_, err = invoice.Reduce(d, invoice.SetItemField{Index: 3, Field: "quantity", Value: "1"})
	assert.ErrorIs(t, err, domain.ErrItemOutOfRange)

	_, err = invoice.Reduce(d, invoice.SetItemField{Index: 0, Field: "color", Value: "red"})
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestReduce_ReverseChargeInvalido(t *testing.T) {
	_, err := invoice.Reduce(entity.InvoiceDraft{}, invoice.SetField{Path: "reverseCharge", Value: "quizás"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReduce_Firma(t *testing.T) {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)

	_, err := invoice.Reduce(d, invoice.SetSignature{Image: &entity.SignatureImage{}})
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	d, err = invoice.Reduce(d, invoice.SetSignature{Image: &entity.SignatureImage{Data: []byte{1}}})
	require.NoError(t, err)
	assert.True(t, d.HasSignature())

	d, err = invoice.Reduce(d, invoice.ClearSignature{})
	require.NoError(t, err)
	assert.False(t, d.HasSignature())
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de la sesión
// ──────────────────────────────────────────────────────────────────────────────

func newSession() *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID: "s1", State: entity.SessionEditing,
		Draft:     entity.NewInvoiceDraft(entity.DefaultTaxRate),
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestSubmit_ConErroresSigueEnEdicion(t *testing.T) {
	s := newSession()
	errs := invoice.Validate(s.Draft)

	require.NoError(t, invoice.Submit(s, errs, time.Now()))
	assert.Equal(t, entity.SessionEditing, s.State)
	assert.Nil(t, s.FinalizedAt)
}

func TestSubmit_SinErroresFinaliza(t *testing.T) {
	s := newSession()
	s.Draft = completeDraft()

	require.NoError(t, invoice.Submit(s, invoice.Validate(s.Draft), time.Now()))
	assert.Equal(t, entity.SessionFinalized, s.State)
	require.NotNil(t, s.FinalizedAt)

	// Sin transición inversa: no se puede editar ni reenviar.
	err := invoice.Edit(s, invoice.AddItem{TaxRate: 18}, time.Now())
	assert.ErrorIs(t, err, domain.ErrSessionFinalized)
	assert.ErrorIs(t, invoice.Submit(s, invoice.ErrorMap{}, time.Now()), domain.ErrSessionFinalized)
}

func TestExportGuard(t *testing.T) {
	s := newSession()
	assert.ErrorIs(t, invoice.BeginExport(s, "t1"), domain.ErrSessionNotFinalized)

	s.State = entity.SessionFinalized
	require.NoError(t, invoice.BeginExport(s, "t1"))
	assert.ErrorIs(t, invoice.BeginExport(s, "t2"), domain.ErrExportInProgress)

	invoice.EndExport(s, "t2") // token ajeno: no libera
	assert.Equal(t, "t1", s.ExportToken)

	invoice.EndExport(s, "t1")
	assert.NoError(t, invoice.BeginExport(s, "t2"))
}
