// Command mdiosh is an interactive shell for the station management bus and
// PHY drivers, run against a simulated MAC and PHY.
//
//	mdiosh -link 100full
//	mdiosh -e -driver generic link
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/soypat/ethmac/internal"
	"github.com/soypat/ethmac/mac"
)

var (
	// flags

	evalOnly bool
	verbose  bool
	phyAddr  uint
	macV2    bool
	driver   = "lan8742a"
	link     = "down"
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&verbose, "v", verbose, "Log every bus transaction.")
	flag.UintVar(&phyAddr, "addr", phyAddr, "PHY address on the management bus (0-31).")
	flag.BoolVar(&macV2, "v2", macV2, "Use the ETH v2 (STM32H7) register layout.")
	flag.StringVar(&driver, "driver", driver, "PHY driver: lan8742a or generic.")
	flag.StringVar(&link, "link", link, "Initial simulated link condition.")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	if phyAddr > 31 {
		log.Printf("PHY address %d out of range", phyAddr)
		return 2
	}
	cfg := config{
		PHYAddr: uint8(phyAddr),
		Version: mac.V1,
		Driver:  driver,
		Link:    link,
	}
	if macV2 {
		cfg.Version = mac.V2
	}
	if verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: internal.LevelTrace}))
	}
	s, err := newSession(cfg)
	if err != nil {
		log.Println(err)
		return 1
	}
	defer s.close()

	args := flag.Args()
	if len(args) == 0 && evalOnly {
		log.Println("command expected")
		return 2
	}
	sh := newShell(s)
	if len(args) > 0 {
		if err := sh.Process(args...); err != nil {
			log.Println(err)
			return 1
		}
		return 0
	}
	sh.Printf("simulated %s PHY at address %d on %s\n", driver, cfg.PHYAddr, cfg.Version)
	sh.Run()
	fmt.Println()
	return 0
}
