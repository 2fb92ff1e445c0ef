package utils

import "math/rand"

const (
	numberAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	cabinBindAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// RandomBookingNumber returns a short human-readable code; uniqueness is
// enforced by the caller against the store.
func RandomBookingNumber(length int) string {
	return randomFrom(numberAlphabet, length)
}

// RandomCabinBind returns the grouping key shared by items purchased together
// in one cabin.
func RandomCabinBind() string {
	return randomFrom(cabinBindAlphabet, 8)
}

func randomFrom(alphabet string, length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(out)
}
