package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/adapter"
	"github.com/mrz1836/suiwallet/internal/output"
)

// walletsCmd lists the resolved wallets.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsCmd = &cobra.Command{
	Use:   "wallets",
	Short: "List available wallets",
	Long: `List every wallet the configured adapter providers currently expose,
with its ready state and advertised features. The remembered wallet is marked.`,
	Example: `  suiwallet wallets
  suiwallet wallets --unsafe-burner -o json`,
	Args: cobra.NoArgs,
	RunE: runWallets,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(walletsCmd)
}

// walletView is the JSON shape of one wallet.
type walletView struct {
	Name       string   `json:"name"`
	ReadyState string   `json:"ready_state"`
	Features   []string `json:"features,omitempty"`
	Preferred  bool     `json:"preferred"`
}

func runWallets(_ *cobra.Command, _ []string) error {
	cc, err := openContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	preferred, _ := cc.Preferences.Read(cc.PreferenceKey())

	wallets := cc.Manager.Wallets()
	views := make([]walletView, 0, len(wallets))
	for _, w := range wallets {
		v := walletView{
			Name:       w.Name(),
			ReadyState: string(w.ReadyState()),
			Preferred:  w.Name() == preferred,
		}
		if fr, ok := w.(adapter.FeatureReporter); ok {
			v.Features = fr.Features()
		}
		views = append(views, v)
	}

	return cc.Formatter.Emit(views, func(w io.Writer) error {
		if len(views) == 0 {
			outln(w, "No wallets available.")
			return nil
		}
		table := output.NewTable("NAME", "READY", "FEATURES", "")
		for _, v := range views {
			mark := ""
			if v.Preferred {
				mark = "*"
			}
			table.AddRow(v.Name, v.ReadyState, strings.Join(v.Features, ","), mark)
		}
		return table.Render(w)
	})
}

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...any) {
	fmt.Fprintln(w, args...)
}
