package utils

import (
	"golang.org/x/crypto/bcrypt"
)

func HashPasscode(passcode string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasscodeHash(passcode, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode))
	return err == nil
}
