package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	petname "github.com/dustinkirkland/golang-petname"
)

func NewUsername() string {
	petname.NonDeterministicMode()
	n, _ := rand.Int(rand.Reader, big.NewInt(1000))
	return fmt.Sprintf("%s-%03d", petname.Generate(2, "-"), n.Int64())
}
