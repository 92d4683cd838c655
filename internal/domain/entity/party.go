package entity

// Party representa a una de las partes de la factura: vendedor, facturación o envío.
// Todos los campos son texto libre; solo se valida que no estén vacíos.
type Party struct {
	Name    string
	Address string
	City    string
	State   string
	Pincode string // código postal
	PAN     string // solo vendedor
	GST     string // solo vendedor (registro GST)
	Code    string // solo facturación/envío (código de estado/UT)
}
