package service

import "math/rand"

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

// CodeGenerator produces confirmation codes.
type CodeGenerator func() string

// RandomCode returns an 8 character uppercase alphanumeric code from a
// non-cryptographic source. Uniqueness is not checked.
func RandomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
