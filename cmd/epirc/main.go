// Command epirc is a thin CLI over the EllipticPIR client core: it
// exercises every operation in spec.md §6.2 against files on disk, so the
// core can be driven without embedding it in a host runtime.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EllipticPIR/EllipticPIR/config"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "epirc:", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "epirc:", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "epirc",
		Short:         "EC-ElGamal PIR client core CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().Int("workers", cfg.Workers, "worker pool size (0 = GOMAXPROCS)")
	root.PersistentFlags().String("metrics-addr", "", "if set, serve Prometheus metrics on this address for the command's duration")

	root.AddCommand(
		newKeygenCmd(),
		newPubkeyCmd(),
		newEncryptCmd(),
		newSelectCmd(),
		newDecryptReplyCmd(cfg),
	)
	return root
}
