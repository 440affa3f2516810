package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// passwordAlphabet omits look-alike characters (0/O, 1/l/I) because the
	// secret is delivered over email and typed by hand.
	passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"
	passwordLength   = 12
)

// GeneratePassword returns a random temporary secret for employee onboarding
// and forgot-password flows. The secret is only ever delivered out-of-band.
// A randomness source failure aborts the calling flow; a credential must
// never be derived from anything predictable.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, passwordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}

// onboardingMail renders the credentials notification for a new employee.
func onboardingMail(email, password string) (subject, body string) {
	subject = "Employee Registration Notification"
	body = fmt.Sprintf("Welcome to Employee Manager Application!\n\n"+
		"Please use the following credentials to log in to your account:\n\n"+
		"Email: %s\nPassword: %s\n\nThank you.", email, password)
	return subject, body
}

// passwordResetMail renders the forgot-password notification.
func passwordResetMail(password string) (subject, body string) {
	subject = "Password reset"
	body = fmt.Sprintf("Your password has been reset successfully.\n\n"+
		"New Password: %s\n\nThank you.", password)
	return subject, body
}
