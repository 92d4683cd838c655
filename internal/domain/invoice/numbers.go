package invoice

import (
	"strconv"
	"strings"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// ValidateNumbers verificación estricta opcional de los campos numéricos de los ítems.
// Solo revisa valores no vacíos (la obligatoriedad ya la cubre Validate), de modo que
// sus claves nunca colisionan con las de Validate.
func ValidateNumbers(items []entity.LineItem) ErrorMap {
	errs := ErrorMap{}
	for i, item := range items {
		idx := strconv.Itoa(i)
		if !isDecimal(item.UnitPrice) {
			errs["itemUnitPrice"+idx] = "Item unit price must be a number"
		}
		if !isDecimal(item.Quantity) {
			errs["itemQuantity"+idx] = "Item quantity must be a number"
		}
		if !isDecimal(item.Discount) {
			errs["itemDiscount"+idx] = "Item discount must be a number"
		}
	}
	return errs
}

func isDecimal(s string) bool {
	if s == "" {
		return true
	}
	return isDecimalLiteral(strings.TrimSpace(s))
}
