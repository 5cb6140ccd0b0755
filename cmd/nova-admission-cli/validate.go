package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novaguard/novachain/chainstore"
	"github.com/novaguard/novachain/consensus"
	"github.com/novaguard/novachain/crypto"
	"github.com/novaguard/novachain/mempool"
	"github.com/novaguard/novachain/script"
)

func newValidateCmd() *cobra.Command {
	var chainID string
	var testnet bool

	cmd := &cobra.Command{
		Use:   "validate <tx.json> <chainstate-dir>",
		Short: "Run one transaction through admission against an existing chainstore database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			txPath, datadir := args[0], args[1]
			if chainID == "" {
				return fmt.Errorf("--chain-id is required")
			}

			raw, err := os.ReadFile(txPath)
			if err != nil {
				return fmt.Errorf("read tx file: %w", err)
			}
			tx, err := chainstore.DecodeTx(raw)
			if err != nil {
				return fmt.Errorf("decode tx: %w", err)
			}

			chain, err := chainstore.Open(datadir, chainID, consensus.ChainSettings{UseTestnetRules: testnet})
			if err != nil {
				return fmt.Errorf("open chainstore: %w", err)
			}
			defer chain.Close()

			pool := mempool.New()
			checker := script.KeyHashChecker{Provider: crypto.DevProvider{}, SighashFn: cliSighashStub}
			validator := consensus.NewValidator(chain, pool, checker, crypto.DevProvider{})

			verdict, err := validator.Validate(cmd.Context(), tx)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Code              consensus.ErrorCode `json:"code"`
				InputIndexes      []int               `json:"input_indexes,omitempty"`
				UnconfirmedInputs []int               `json:"unconfirmed_inputs,omitempty"`
			}{verdict.Code, verdict.InputIndexes, verdict.UnconfirmedInputs})
		},
	}

	cmd.Flags().StringVar(&chainID, "chain-id", "", "hex chain identifier (selects the chainstore subdirectory)")
	cmd.Flags().BoolVar(&testnet, "testnet", false, "evaluate version-gated rules under testnet settings")
	return cmd
}

// cliSighashStub mirrors novachaind's placeholder signature digest: it
// exists so validate can exercise script.KeyHashChecker without a wire
// signing codec wired in yet.
func cliSighashStub(tx *consensus.Tx, inputIndex int) ([32]byte, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return [32]byte{}, fmt.Errorf("nova-admission-cli: input index out of range")
	}
	return crypto.DevProvider{}.SHA3_256(tx.Inputs[inputIndex].Script), nil
}
