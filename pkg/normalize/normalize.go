package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Email recorta espacios y aplica case folding para que la unicidad no dependa de mayúsculas.
// cases.Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func Email(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Text recorta espacios y normaliza a NFC (nombres y códigos).
func Text(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
