// Command nova-admission-cli is an offline companion to novachaind: it
// validates a single transaction against a chainstore database without
// starting any server, and can seed a fresh database with a fixture asset
// for manual testing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nova-admission-cli",
		Short: "Offline admission validator and chainstore fixture tool",
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newSeedFixtureCmd())
	return root
}
