package cli

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/adapter"
	"github.com/mrz1836/suiwallet/internal/output"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	accountsCmd = &cobra.Command{
		Use:   "accounts",
		Short: "List the connected wallet's accounts",
		Long: `Restore the remembered wallet and list its accounts.`,
		Example: `  suiwallet accounts
  suiwallet accounts --qr`,
		Args: cobra.NoArgs,
		RunE: runAccounts,
	}

	signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a transaction block with the connected wallet",
		Long: `Restore the remembered wallet and ask it to sign a serialized
transaction block. The bytes are passed to the wallet unmodified.`,
		Example: `  suiwallet sign --tx AAACAAgA6AMAAAAAAAA...`,
		Args:    cobra.NoArgs,
		RunE:    runSign,
	}

	accountsQR bool
	signTx     string
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(accountsCmd, signCmd)

	accountsCmd.Flags().BoolVar(&accountsQR, "qr", false, "render the first account as a QR code")
	signCmd.Flags().StringVar(&signTx, "tx", "", "base64 transaction block bytes")
	_ = signCmd.MarkFlagRequired("tx")
}

// notConnected adds a hint to ErrNotConnected.
func notConnected(err error) error {
	if walleterr.Is(err, walleterr.ErrNotConnected) {
		return walleterr.WithSuggestion(err, "run 'suiwallet connect <name>' first")
	}
	return err
}

// accountsView is the JSON shape of the accounts result.
type accountsView struct {
	Wallet   string            `json:"wallet"`
	Accounts []adapter.Address `json:"accounts"`
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	cc, w, err := connectedContext(cmd)
	if err != nil {
		return err
	}
	defer cc.Close()

	ctx, cancel := contextWithTimeout(cmd, approvalTimeout)
	defer cancel()

	accounts, err := cc.Manager.GetAccounts(ctx)
	if err != nil {
		return notConnected(err)
	}

	view := accountsView{Wallet: w.Name(), Accounts: accounts}
	if view.Accounts == nil {
		view.Accounts = []adapter.Address{}
	}
	return cc.Formatter.Emit(view, func(wr io.Writer) error {
		if len(accounts) == 0 {
			outln(wr, "No accounts.")
			return nil
		}
		for _, a := range accounts {
			outln(wr, a.String())
		}
		if accountsQR {
			output.RenderQR(wr, accounts[0].String(), output.DefaultQRConfig())
		}
		return nil
	})
}

func runSign(cmd *cobra.Command, _ []string) error {
	txBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signTx))
	if err != nil || len(txBytes) == 0 {
		return walleterr.WithSuggestion(
			walleterr.WithDetails(walleterr.ErrInvalidTransaction, map[string]string{"flag": "--tx"}),
			"pass the transaction block bytes as standard base64",
		)
	}

	cc, _, err := connectedContext(cmd)
	if err != nil {
		return err
	}
	defer cc.Close()

	ctx, cancel := contextWithTimeout(cmd, approvalTimeout)
	defer cancel()

	signed, err := cc.Manager.SignTransactionBlock(ctx, adapter.TransactionInput{Bytes: txBytes})
	if err != nil {
		return notConnected(err)
	}

	return cc.Formatter.Emit(signed, func(w io.Writer) error {
		out(w, "Transaction: %s\nSignature:   %s\n", signed.TransactionBlockBytes, signed.Signature)
		return nil
	})
}
