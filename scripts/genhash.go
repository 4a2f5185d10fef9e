// Command genhash prints bcrypt hashes for seeding accounts directly into
// MongoDB, e.g. `go run ./scripts admin@example.com:S3cret!pass`.
package main

import (
	"fmt"
	"os"
	"strings"

	"job-board-backend/pkg/password"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash email:password [email:password ...]")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		email, pass, ok := strings.Cut(arg, ":")
		if !ok || pass == "" {
			fmt.Fprintf(os.Stderr, "skipping %q: expected email:password\n", arg)
			continue
		}

		hash, err := password.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Email: %s\nHash: %s\n\n", strings.ToLower(email), hash)
	}
}
