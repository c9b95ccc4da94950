// Package textmatch compara textos sin distinguir mayúsculas con plegado Unicode
// (necesario para alfabetos como el azerí: "İ", "ə").
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold normaliza s para comparaciones insensibles a mayúsculas.
// cases.Caser no es seguro para uso concurrente, por eso se crea uno por llamada.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Equal compara a y b sin distinguir mayúsculas.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Contains indica si needle aparece en haystack sin distinguir mayúsculas.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// HasPrefix indica si s empieza por prefix sin distinguir mayúsculas.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(Fold(s), Fold(prefix))
}
