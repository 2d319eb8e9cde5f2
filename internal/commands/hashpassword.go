// Package commands implements the CLI subcommands that run instead of the
// daemon.
package commands

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// HashPassword handles the hash-password subcommand. It prompts for a
// password without echoing it and prints a bcrypt hash suitable for the
// basic_auth.password_hash config field.
func HashPassword() {
	password := readPassword("Enter password:   ")
	if password == "" {
		fmt.Fprintln(os.Stderr, "Password cannot be empty")
		os.Exit(1)
	}
	confirm := readPassword("Confirm password: ")
	if password != confirm {
		fmt.Fprintln(os.Stderr, "Passwords do not match")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}

func readPassword(prompt string) string {
	fmt.Print(prompt)
	if !term.IsTerminal(int(syscall.Stdin)) {
		// Piped input, read a line without terminal tricks.
		var password string
		fmt.Scanln(&password)
		return password
	}
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	return string(password)
}
