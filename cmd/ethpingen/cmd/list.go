package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listInstance string

var listCmd = &cobra.Command{
	Use:   "list <board-file>",
	Short: "List the bindings of a board description",
	Long: `List every (instance, pin, signal role, alternate function) binding.

Examples:
  ethpingen list stm32eth.board
  ethpingen list --instance ETH stm32eth.board`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listInstance, "instance", "i", "",
		"only list bindings of this instance")
}

func runList(cmd *cobra.Command, args []string) error {
	board, err := loadBoard(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Chip: %s\n", board.Chip)
	found := false
	for _, inst := range board.Instances {
		if listInstance != "" && inst.Name != listInstance {
			continue
		}
		found = true
		fmt.Fprintf(out, "\nInstance %s: %d binding(s)\n", inst.Name, len(inst.Bindings))
		fmt.Fprintf(out, "  %-6s %-8s %s\n", "PIN", "ROLE", "AF")
		for _, bd := range inst.Bindings {
			fmt.Fprintf(out, "  %-6s %-8s AF%d\n", bd.Pin, bd.Role.Name(), bd.AF)
		}
	}
	if !found && listInstance != "" {
		return fmt.Errorf("instance %q not declared", listInstance)
	}
	return nil
}
