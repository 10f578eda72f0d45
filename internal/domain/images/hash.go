package images

import "unicode/utf16"

// Hash es el hash rolling clásico de 32 bits: h = (h<<5) - h + c, con
// overflow de int32 en cada paso, recorriendo unidades UTF-16 de izquierda a derecha.
// Tiene que dar exactamente lo mismo que la versión web para que las
// selecciones por nombre (foto sembrada, galería, color) no cambien.
func Hash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	return h
}

// Bucket calcula abs(h) % n. El abs se hace en 64 bits: abs(MinInt32) no entra en int32.
func Bucket(h int32, n int) int {
	if n <= 0 {
		return 0
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(n))
}
