package configs

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
)

// GenerateAndPrintSecrets prints fresh random secrets to paste into .env.
func GenerateAndPrintSecrets() error {
	jwtSecret := securecookie.GenerateRandomKey(64)
	if jwtSecret == nil {
		return fmt.Errorf("failed to generate random key")
	}

	fmt.Printf("JWT_SECRET=%s\n", base64.StdEncoding.EncodeToString(jwtSecret))
	return nil
}
