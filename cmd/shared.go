package cmd

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/maelkum/storefront/client"
	"github.com/maelkum/storefront/pkg/clierr"
	"golang.org/x/term"
)

// classifyError maps a failed remote call to a structured CLI error with a
// user-facing message.
func classifyError(err error) *clierr.Error {
	switch {
	case client.IsStatus(err, http.StatusUnauthorized), client.IsStatus(err, http.StatusForbidden):
		return clierr.New(clierr.Auth, "You are not signed in, or your session has expired.", err)
	case client.IsStatus(err, http.StatusNotFound):
		return clierr.New(clierr.NotFound, "The requested record was not found.", err)
	case client.IsStatus(err, http.StatusBadRequest):
		return clierr.New(clierr.Validation, "The request was rejected by the server.", err)
	default:
		return clierr.New(clierr.Remote, "The remote service could not be reached.", err)
	}
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password without echoing it.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	return strings.TrimSpace(string(password))
}
