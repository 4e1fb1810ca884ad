package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost factor de trabajo usado cuando la configuración no indica otro.
const DefaultCost = 10

// ErrTooLong bcrypt no admite contraseñas de más de 72 bytes.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Hash genera el hash bcrypt con el costo indicado.
func Hash(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matches compara en tiempo constante la contraseña contra el hash almacenado.
func Matches(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
