package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

// Prints a random 256-bit value suitable for FINANCEFLOW_AUTH_SECRET.
func main() {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("Unable to generate secret: %v", err)
	}
	fmt.Println("FINANCEFLOW_AUTH_SECRET=" + hex.EncodeToString(secret))
}
