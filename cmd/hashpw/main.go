package main

import (
	"fmt"
	"log"
	"os"

	"github.com/xelth-com/sapmockgo/internal/auth"
)

// Generates a bcrypt hash for SIM_PASSWORD_HASH.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
