package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soypat/ethmac/internal/boarddesc"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ethpingen",
	Short: "Ethernet pin capability registry generator",
	Long: `Generate and inspect the pin capability registry from a board description.

A board description lists, per MAC peripheral instance, which GPIO pins can
carry each RMII signal role and with which alternate function:

  chip "stm32-eth";
  instance ETH {
      PA1 REF_CLK AF11;
  }

Examples:
  ethpingen generate -o table_gen.go stm32eth.board   # Write the registry source
  ethpingen list stm32eth.board                       # Print every binding
  ethpingen check --strict stm32eth.board             # Validate a description`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadBoard(cmd *cobra.Command, filename string) (*boarddesc.Board, error) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Parsing board description: %s\n", filename)
	}
	board, err := boarddesc.Load(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load board description: %w", err)
	}
	return board, nil
}
