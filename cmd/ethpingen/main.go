// Command ethpingen generates the pin capability registry of package pins
// from a board description.
//
//	ethpingen generate -o table_gen.go stm32eth.board
//	ethpingen list stm32eth.board
//	ethpingen check --strict stm32eth.board
package main

import "github.com/soypat/ethmac/cmd/ethpingen/cmd"

func main() {
	cmd.Execute()
}
