// Package pricing calcula totales de líneas de documentos (servicio de dominio).
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// Places decimales con los que se comparan y guardan los montos (NUMERIC(14,2)).
	Places = 2
	// MaxQuantity tope por línea; cabe en la columna INTEGER y las sumas por producto no desbordan.
	MaxQuantity = 1_000_000
)

var (
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor a 0")
	ErrQuantityTooLarge    = errors.New("la cantidad supera el máximo de 1000000 por línea")
	ErrAmountPrecision     = errors.New("los montos admiten como máximo 2 decimales")
	ErrNegativeUnitPrice   = errors.New("el precio unitario no puede ser negativo")
	ErrNegativeDiscount    = errors.New("el descuento no puede ser negativo")
	ErrDiscountTooLarge    = errors.New("el descuento supera el subtotal de la línea")
	ErrTotalMismatch       = errors.New("totalPrice no coincide con cantidad × precio unitario − descuento")
)

// LineTotal = (Cantidad × PrecioUnitario) − Descuento, redondeado a 2 decimales.
// declared es el totalPrice enviado por el cliente (opcional); solo se usa como verificación.
func LineTotal(quantity int, unitPrice, discount decimal.Decimal, declared *decimal.Decimal) (decimal.Decimal, error) {
	if err := CheckQuantity(quantity); err != nil {
		return decimal.Zero, err
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, ErrNegativeUnitPrice
	}
	if discount.IsNegative() {
		return decimal.Zero, ErrNegativeDiscount
	}
	if !HasValidPrecision(unitPrice) || !HasValidPrecision(discount) {
		return decimal.Zero, ErrAmountPrecision
	}
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.GreaterThan(gross) {
		return decimal.Zero, ErrDiscountTooLarge
	}
	total := gross.Sub(discount).Round(Places)
	if declared != nil && !declared.Round(Places).Equal(total) {
		return decimal.Zero, ErrTotalMismatch
	}
	return total, nil
}

// CheckQuantity exige 1 <= quantity <= MaxQuantity.
func CheckQuantity(quantity int) error {
	if quantity < 1 {
		return ErrNonPositiveQuantity
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// HasValidPrecision false si el monto tiene más de 2 decimales significativos
// ("10.500" es válido, "10.505" no).
func HasValidPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(Places))
}

// Sum suma los totales de línea.
func Sum(totals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum.Round(Places)
}
