// Command docledger is a thin client for the ledger API: it wraps the
// register / verify / list / request / fulfill operations and mints caller
// tokens for local use. All state lives server-side.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var c client

	root := &cobra.Command{
		Use:           "docledger",
		Short:         "Client for the docledger document registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.baseURL, "server", envOr("DOCLEDGER_SERVER", "http://localhost:8080"), "server base URL")
	root.PersistentFlags().StringVar(&c.token, "token", os.Getenv("DOCLEDGER_TOKEN"), "caller bearer token")

	root.AddCommand(
		newTokenCmd(),
		newRegisterCmd(&c),
		newVerifyCmd(&c),
		newGetCmd(&c),
		newListCmd(&c),
		newDeriveCmd(&c),
		newRequestCmd(&c),
		newFulfillCmd(&c),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
