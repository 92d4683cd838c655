package invoicing

import (
	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

// DraftToDTO convierte el borrador al formato JSON del formulario.
func DraftToDTO(d entity.InvoiceDraft) dto.InvoiceDraftDTO {
	out := dto.InvoiceDraftDTO{
		SellerDetails: dto.SellerDTO{
			Name: d.Seller.Name, Address: d.Seller.Address, City: d.Seller.City,
			State: d.Seller.State, Pincode: d.Seller.Pincode, PAN: d.Seller.PAN, GST: d.Seller.GST,
		},
		PlaceOfSupply:   d.PlaceOfSupply,
		BillingDetails:  counterpartyToDTO(d.Billing),
		ShippingDetails: counterpartyToDTO(d.Shipping),
		PlaceOfDelivery: d.PlaceOfDelivery,
		OrderDetails:    dto.OrderDetailsDTO{OrderNo: d.Order.OrderNo, OrderDate: d.Order.OrderDate},
		InvoiceDetails:  dto.InvoiceDetailsDTO{InvoiceNo: d.Invoice.InvoiceNo, InvoiceDate: d.Invoice.InvoiceDate},
		ReverseCharge:   d.ReverseCharge,
		Items:           make([]dto.LineItemDTO, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, lineItemToDTO(it))
	}
	if d.HasSignature() {
		out.SignatureImage = &dto.SignatureDTO{
			FileName:   d.Signature.FileName,
			MIMEType:   d.Signature.MIMEType,
			Size:       len(d.Signature.Data),
			PreviewURI: d.Signature.PreviewURI,
		}
	}
	return out
}

// DraftFromRequest construye un borrador a partir del body de los endpoints sin sesión.
// La firma ya decodificada se recibe aparte (nil si no se envió). La tarifa de cada ítem
// es taxRate; el taxRate del body se ignora porque no es editable por el cliente.
func DraftFromRequest(in dto.InvoiceDraftRequest, signature *entity.SignatureImage, taxRate float64) entity.InvoiceDraft {
	d := entity.InvoiceDraft{
		Seller: entity.Party{
			Name: in.SellerDetails.Name, Address: in.SellerDetails.Address, City: in.SellerDetails.City,
			State: in.SellerDetails.State, Pincode: in.SellerDetails.Pincode,
			PAN: in.SellerDetails.PAN, GST: in.SellerDetails.GST,
		},
		PlaceOfSupply:   in.PlaceOfSupply,
		Billing:         counterpartyFromDTO(in.BillingDetails),
		Shipping:        counterpartyFromDTO(in.ShippingDetails),
		PlaceOfDelivery: in.PlaceOfDelivery,
		Order:           entity.OrderInfo{OrderNo: in.OrderDetails.OrderNo, OrderDate: in.OrderDetails.OrderDate},
		Invoice:         entity.InvoiceInfo{InvoiceNo: in.InvoiceDetails.InvoiceNo, InvoiceDate: in.InvoiceDetails.InvoiceDate},
		ReverseCharge:   in.ReverseCharge,
		Items:           make([]entity.LineItem, 0, len(in.Items)),
		Signature:       signature,
	}
	for _, it := range in.Items {
		item := entity.NewLineItem(taxRate)
		item.Description = it.Description
		item.UnitPrice = it.UnitPrice
		item.Quantity = it.Quantity
		item.Discount = it.Discount
		d.Items = append(d.Items, item)
	}
	return d
}

// SessionToResponse convierte la sesión a su representación HTTP.
func SessionToResponse(s *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:          s.ID,
		State:       string(s.State),
		Exporting:   s.ExportToken != "",
		Draft:       DraftToDTO(s.Draft),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		FinalizedAt: s.FinalizedAt,
	}
}

// TotalsToResponse convierte el resultado del cálculo.
func TotalsToResponse(t invoice.Totals) dto.TotalsResponse {
	out := dto.TotalsResponse{
		Items:          make([]dto.LineTotalsDTO, 0, len(t.Items)),
		TotalNetAmount: dto.Amount(t.TotalNet),
		TotalTaxAmount: dto.Amount(t.TotalTax),
		GrandTotal:     dto.Amount(t.GrandTotal),
	}
	for _, l := range t.Items {
		out.Items = append(out.Items, dto.LineTotalsDTO{
			LineItemDTO: lineItemToDTO(l.Item),
			NetAmount:   dto.Amount(l.NetAmount),
			TaxAmount:   dto.Amount(l.TaxAmount),
			TotalAmount: dto.Amount(l.TotalAmount),
		})
	}
	return out
}

// ViewToResponse convierte la factura generada.
func ViewToResponse(v *InvoiceView) *dto.InvoiceViewResponse {
	return &dto.InvoiceViewResponse{
		SessionID:   v.SessionID,
		Draft:       DraftToDTO(v.Draft),
		Totals:      TotalsToResponse(v.Totals),
		FinalizedAt: v.FinalizedAt,
	}
}

// ValidationToResponse convierte el ErrorMap.
func ValidationToResponse(errs invoice.ErrorMap) *dto.ValidationResponse {
	if errs == nil {
		errs = invoice.ErrorMap{}
	}
	return &dto.ValidationResponse{Valid: errs.Valid(), Errors: errs}
}

func counterpartyToDTO(p entity.Party) dto.CounterpartyDTO {
	return dto.CounterpartyDTO{
		Name: p.Name, Address: p.Address, City: p.City, State: p.State, Pincode: p.Pincode, Code: p.Code,
	}
}

func counterpartyFromDTO(p dto.CounterpartyDTO) entity.Party {
	return entity.Party{
		Name: p.Name, Address: p.Address, City: p.City, State: p.State, Pincode: p.Pincode, Code: p.Code,
	}
}

func lineItemToDTO(it entity.LineItem) dto.LineItemDTO {
	return dto.LineItemDTO{
		Description: it.Description,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		Discount:    it.Discount,
		TaxRate:     it.TaxRate,
	}
}
