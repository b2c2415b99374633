// Package money formatea importes en pesos mexicanos.
package money

import "strconv"

// Format devuelve el importe con separador de miles "," y sin decimales: 1999 -> "$1,999".
func Format(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	out := s
	if n > 3 {
		rem := n % 3
		if rem == 0 {
			rem = 3
		}
		out = s[:rem]
		for i := rem; i < n; i += 3 {
			out += "," + s[i:i+3]
		}
	}
	if neg {
		return "-$" + out
	}
	return "$" + out
}

// FormatShipping muestra "GRATIS" cuando el envío no tiene costo.
func FormatShipping(v int64) string {
	if v == 0 {
		return "GRATIS"
	}
	return Format(v)
}
