package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/adapter"
	"github.com/mrz1836/suiwallet/internal/burner"
	"github.com/mrz1836/suiwallet/internal/connection"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/registry"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	connectCmd = &cobra.Command{
		Use:   "connect <name>",
		Short: "Connect a wallet and remember it",
		Long: `Select the named wallet, connect it and remember it for later runs.
Wallet names are matched exactly, including case.`,
		Example: `  suiwallet connect "Sui Wallet"
  suiwallet connect "Unsafe Burner Wallet" --unsafe-burner`,
		Args: cobra.ExactArgs(1),
		RunE: runConnect,
	}

	disconnectCmd = &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect and forget the remembered wallet",
		Long: `Restore the remembered wallet, disconnect it and remove it from the
preference store. Running it with nothing remembered is not an error.`,
		Example: `  suiwallet disconnect`,
		Args:    cobra.NoArgs,
		RunE:    runDisconnect,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the connection status",
		Long: `Restore the remembered wallet and show the resulting connection state.
With --auto-connect the default wallet is tried when none is remembered.`,
		Example: `  suiwallet status
  suiwallet status --auto-connect -o json`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}

	approvalTimeout time.Duration
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(connectCmd, disconnectCmd, statusCmd)
	rootCmd.PersistentFlags().DurationVar(&approvalTimeout, "timeout", defaultApprovalTimeout,
		"how long to wait for the wallet to respond")
}

// stateView is the JSON shape of a connection.State.
type stateView struct {
	Wallet     string `json:"wallet,omitempty"`
	Status     string `json:"status"`
	Connecting bool   `json:"connecting"`
	Connected  bool   `json:"connected"`
	IsError    bool   `json:"is_error"`
}

func viewOf(s connection.State) stateView {
	return stateView{
		Wallet:     s.WalletName(),
		Status:     s.Status.String(),
		Connecting: s.Connecting,
		Connected:  s.Connected,
		IsError:    s.IsError,
	}
}

func printState(cc *CommandContext, s connection.State) error {
	view := viewOf(s)
	return cc.Formatter.Emit(view, func(w io.Writer) error {
		if view.Wallet == "" {
			out(w, "Status: %s\n", view.Status)
			return nil
		}
		out(w, "Wallet: %s\nStatus: %s\n", view.Wallet, view.Status)
		return nil
	})
}

func runConnect(cmd *cobra.Command, args []string) error {
	name := args[0]

	cc, err := openContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	wallets := cc.Manager.Wallets()
	w, ok := registry.FindWallet(wallets, name)
	if !ok {
		err := walleterr.WithDetails(walleterr.ErrWalletNotFound, map[string]string{"wallet": name})
		if suggestion := registry.SuggestName(wallets, name); suggestion != "" {
			return walleterr.WithSuggestion(err, fmt.Sprintf("did you mean %q?", suggestion))
		}
		return walleterr.WithSuggestion(err, "run 'suiwallet wallets' to list available wallets")
	}

	ctx, cancel := contextWithTimeout(cmd, approvalTimeout)
	defer cancel()

	cc.Manager.Select(ctx, name)
	state := cc.Manager.State()

	if state.IsError {
		if state.Wallet == nil {
			return walleterr.WithDetails(walleterr.ErrWalletNotReady, map[string]string{
				"wallet": name,
				"ready":  string(w.ReadyState()),
			})
		}
		return walleterr.WithSuggestion(
			walleterr.WithDetails(walleterr.ErrConnectionFailed, map[string]string{"wallet": name}),
			"check the wallet and run the command again; details are in the log with -v",
		)
	}

	if name == burner.Name && !cc.Formatter.IsJSON() {
		output.Warnf(cmd.ErrOrStderr(), "%s keeps its key in memory; use it for testing only", name)
	}
	return printState(cc, state)
}

func runDisconnect(cmd *cobra.Command, _ []string) error {
	cc, err := openContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	ctx, cancel := contextWithTimeout(cmd, approvalTimeout)
	defer cancel()

	// Restore the remembered wallet so it can be disconnected.
	cc.Manager.Initialize(ctx, connection.InitOptions{AutoConnect: false})
	remembered := cc.Manager.State().Wallet != nil
	if err := cc.Manager.Disconnect(ctx); err != nil {
		return err
	}
	if !remembered && !cc.Formatter.IsJSON() {
		output.Infof(cmd.OutOrStdout(), "No wallet was connected")
	}
	return printState(cc, cc.Manager.State())
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cc, err := openContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	ctx, cancel := contextWithTimeout(cmd, approvalTimeout)
	defer cancel()

	cc.Manager.Initialize(ctx, connection.InitOptions{AutoConnect: cc.Config.GetWallet().AutoConnect})
	return printState(cc, cc.Manager.State())
}

// connectedContext opens a context and restores the remembered wallet.
func connectedContext(cmd *cobra.Command) (*CommandContext, adapter.Wallet, error) {
	cc, err := openContext()
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := contextWithTimeout(cmd, approvalTimeout)
	defer cancel()

	cc.Manager.Initialize(ctx, connection.InitOptions{AutoConnect: cc.Config.GetWallet().AutoConnect})
	return cc, cc.Manager.State().Wallet, nil
}
