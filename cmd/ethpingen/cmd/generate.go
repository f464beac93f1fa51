package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soypat/ethmac/internal/pingen"
)

var (
	outputFile  string
	packageName string
)

var generateCmd = &cobra.Command{
	Use:   "generate <board-file>",
	Short: "Generate the Go source of the pin capability registry",
	Long: `Generate Go source declaring one type per pin and one interface per
(instance, signal role), so that binding a pin to a role it cannot carry
does not compile. Output goes to stdout unless -o is given.

Examples:
  ethpingen generate stm32eth.board
  ethpingen generate -o table_gen.go stm32eth.board`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"output file (default stdout)")
	generateCmd.Flags().StringVarP(&packageName, "package", "p", "pins",
		"package name of the generated file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	filename := args[0]
	board, err := loadBoard(cmd, filename)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = pingen.Generate(&buf, board, pingen.Config{
		Package: packageName,
		Command: generateCommand(filename),
	})
	if err != nil {
		return fmt.Errorf("failed to generate: %w", err)
	}

	if outputFile == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	err = os.WriteFile(outputFile, buf.Bytes(), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", outputFile, buf.Len())
	}
	return nil
}

// generateCommand reconstructs the invocation recorded in the generated file header.
// Paths are reduced to their base name so output does not depend on the working directory.
func generateCommand(filename string) string {
	c := "ethpingen generate"
	if packageName != "pins" {
		c += " -p " + packageName
	}
	if outputFile != "" {
		c += " -o " + filepath.Base(outputFile)
	}
	return c + " " + filepath.Base(filename)
}
