package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novaguard/novachain/chainstore"
	"github.com/novaguard/novachain/consensus"
)

// newSeedFixtureCmd populates a fresh chainstore database with one issued
// asset, one certificate, one MIT token and one DID, plus their issuing
// address marked valid — a minimal confirmed-chain state that lets
// validate exercise every lookup path (GetAsset, GetAssetCert,
// GetRegisteredMIT, GetRegisteredDID, IsValidAddress) without requiring a
// running node.
func newSeedFixtureCmd() *cobra.Command {
	var chainID, symbol, address, issuerDID string

	cmd := &cobra.Command{
		Use:   "seed-fixture <chainstate-dir>",
		Short: "Seed a chainstore database with a fixture asset, cert, MIT and DID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			datadir := args[0]
			if chainID == "" {
				return fmt.Errorf("--chain-id is required")
			}

			chain, err := chainstore.Open(datadir, chainID, consensus.ChainSettings{})
			if err != nil {
				return fmt.Errorf("open chainstore: %w", err)
			}
			defer chain.Close()

			symbol = consensus.NormalizeSymbol(symbol)

			if err := chain.PutAsset(&consensus.Asset{
				Symbol:                  symbol,
				MaxSupply:               1_000_000,
				IssuingAddress:          address,
				IssuerDID:               issuerDID,
				SecondaryIssueThreshold: consensus.SecondaryIssueFreelyIssuable,
			}); err != nil {
				return fmt.Errorf("put asset: %w", err)
			}
			if err := chain.PutAssetCert(&consensus.AssetCert{
				Symbol:   symbol,
				CertType: consensus.CertIssue,
				OwnerDID: issuerDID,
				Address:  address,
			}); err != nil {
				return fmt.Errorf("put asset cert: %w", err)
			}
			if err := chain.PutMIT(&consensus.MIT{Symbol: symbol, Address: address}); err != nil {
				return fmt.Errorf("put mit: %w", err)
			}
			if err := chain.PutDID(&consensus.DID{Symbol: issuerDID, Address: address}); err != nil {
				return fmt.Errorf("put did: %w", err)
			}
			if err := chain.MarkAddressValid(address); err != nil {
				return fmt.Errorf("mark address valid: %w", err)
			}
			if err := chain.SetAssetVolume(symbol, 0); err != nil {
				return fmt.Errorf("set asset volume: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded fixture: symbol=%s address=%s issuer_did=%s\n", symbol, address, issuerDID)
			return nil
		},
	}

	cmd.Flags().StringVar(&chainID, "chain-id", "", "hex chain identifier (selects the chainstore subdirectory)")
	cmd.Flags().StringVar(&symbol, "symbol", "NOVA.TEST", "fixture asset/MIT symbol")
	cmd.Flags().StringVar(&address, "address", "nova1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqfixture", "fixture owning address")
	cmd.Flags().StringVar(&issuerDID, "issuer-did", "did:nova:fixture-issuer", "fixture issuer DID symbol")
	return cmd
}
