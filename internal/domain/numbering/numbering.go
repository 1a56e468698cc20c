// Package numbering formatea y parsea los números legibles de documentos
// (órdenes de servicio y ventas). El contador atómico vive en SequenceRepository.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tipo de documento numerado. Cada Kind tiene su propio contador.
type Kind string

const (
	KindOrder Kind = "ORDER"
	KindSale  Kind = "SALE"
)

// Width dígitos mínimos del número (relleno con ceros).
const Width = 6

// Prefix devuelve el prefijo del documento: "OS" para órdenes, "V" para ventas.
func (k Kind) Prefix() string {
	switch k {
	case KindOrder:
		return "OS"
	case KindSale:
		return "V"
	}
	return ""
}

// Valid indica si el Kind es conocido.
func (k Kind) Valid() bool {
	return k.Prefix() != ""
}

// Format renderiza n como "<PREFIJO>-NNNNNN". Números de más de 6 dígitos no se truncan.
func Format(kind Kind, n int64) string {
	return fmt.Sprintf("%s-%0*d", kind.Prefix(), Width, n)
}

// Parse es la inversa de Format.
func Parse(s string) (Kind, int64, error) {
	prefix, digits, ok := strings.Cut(s, "-")
	if !ok || len(digits) < Width {
		return "", 0, fmt.Errorf("número de documento inválido: %q", s)
	}
	var kind Kind
	switch prefix {
	case KindOrder.Prefix():
		kind = KindOrder
	case KindSale.Prefix():
		kind = KindSale
	default:
		return "", 0, fmt.Errorf("prefijo desconocido: %q", prefix)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("número de documento inválido: %q", s)
	}
	return kind, n, nil
}
