package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var strict bool

var checkCmd = &cobra.Command{
	Use:   "check <board-file>",
	Short: "Validate a board description",
	Long: `Validate a board description: syntax, pin names, signal roles, alternate
function range and duplicate (instance, pin, role) entries. Instances lacking a
pin for some role are reported; with --strict they are an error.

Examples:
  ethpingen check stm32eth.board
  ethpingen check --strict stm32eth.board`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&strict, "strict", false,
		"fail if an instance has no pin for some signal role")
}

func runCheck(cmd *cobra.Command, args []string) error {
	board, err := loadBoard(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	incomplete := 0
	bindings := 0
	for _, inst := range board.Instances {
		bindings += len(inst.Bindings)
		missing := inst.Missing()
		if len(missing) == 0 {
			continue
		}
		incomplete++
		names := make([]string, len(missing))
		for i, r := range missing {
			names[i] = r.Name()
		}
		fmt.Fprintf(out, "warning: instance %s has no pin for %s\n", inst.Name, strings.Join(names, ", "))
	}
	if strict && incomplete > 0 {
		return fmt.Errorf("%d instance(s) cannot form a complete RMII pin set", incomplete)
	}
	fmt.Fprintf(out, "ok: chip %s, %d instance(s), %d binding(s)\n", board.Chip, len(board.Instances), bindings)
	return nil
}
