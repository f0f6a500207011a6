package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

// TestAllCommandsHaveDescriptions walks the command tree and verifies every
// command carries Short and Long help text.
func TestAllCommandsHaveDescriptions(t *testing.T) {
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		t.Run(cmd.CommandPath(), func(t *testing.T) {
			assert.NotEmpty(t, cmd.Short, "%s: missing Short description", cmd.CommandPath())
			assert.NotEmpty(t, cmd.Long, "%s: missing Long description", cmd.CommandPath())
			assert.LessOrEqual(t, len(cmd.Short), 80, "%s: Short description too long", cmd.CommandPath())
		})
	})
}

// TestLeafCommandsHaveExamples verifies that every runnable command has an
// Example field that invokes suiwallet, and no Long embeds its own examples.
func TestLeafCommandsHaveExamples(t *testing.T) {
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		if cmd.Name() == "help" {
			return // added by cobra
		}
		t.Run(cmd.CommandPath(), func(t *testing.T) {
			assert.NotContains(t, cmd.Long, "\nExample", "%s: move examples to the Example field", cmd.CommandPath())
			if cmd.RunE == nil && cmd.Run == nil {
				return
			}
			assert.Contains(t, cmd.Example, "suiwallet", "%s: missing Example", cmd.CommandPath())
		})
	})
}

func TestAllFlagsHaveDescriptions(t *testing.T) {
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			t.Run(cmd.CommandPath()+"/--"+f.Name, func(t *testing.T) {
				assert.NotEmpty(t, f.Usage, "flag --%s on %s has no description", f.Name, cmd.CommandPath())
			})
		})
	})
}

func TestWalkCommandsVisitsAll(t *testing.T) {
	var visited []string
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		visited = append(visited, cmd.CommandPath())
	})

	for _, expected := range []string{
		"suiwallet",
		"suiwallet wallets",
		"suiwallet connect",
		"suiwallet disconnect",
		"suiwallet status",
		"suiwallet accounts",
		"suiwallet sign",
		"suiwallet config",
		"suiwallet config init",
		"suiwallet config show",
		"suiwallet config get",
		"suiwallet config set",
		"suiwallet completion",
		"suiwallet version",
	} {
		assert.Contains(t, visited, expected, "walkCommands did not visit %q", expected)
	}
}

func TestEnrichParentLong(t *testing.T) {
	noop := func(*cobra.Command, []string) {}
	parent := &cobra.Command{Use: "parent", Short: "Parent", Long: "Base description."}
	visible := &cobra.Command{Use: "visible", Short: "Visible command", Run: noop}
	hidden := &cobra.Command{Use: "hidden", Short: "Hidden command", Hidden: true, Run: noop}
	parent.AddCommand(visible, hidden)

	enrichParentLong(parent)

	assert.Contains(t, parent.Long, "Base description.")
	assert.Contains(t, parent.Long, "Visible command")
	assert.NotContains(t, parent.Long, "hidden")

	leaf := &cobra.Command{Use: "leaf", Short: "A leaf", Long: "Leaf description."}
	enrichParentLong(leaf)
	assert.Equal(t, "Leaf description.", leaf.Long)
}
