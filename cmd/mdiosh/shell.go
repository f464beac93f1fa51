package main

import (
	"github.com/abiosoft/ishell"
)

const sessionKey = "$session"

// sessionFrom gets the session from ishell context.
func sessionFrom(c *ishell.Context) *session {
	return c.Get(sessionKey).(*session)
}

// ctxWriter adapts an ishell context to io.Writer so output honors the shell's writer.
type ctxWriter struct{ c *ishell.Context }

func (w ctxWriter) Write(p []byte) (int, error) {
	w.c.Print(string(p))
	return len(p), nil
}

// withArgs wraps session operations that take arguments and may fail.
func withArgs(fn func(s *session, c *ishell.Context) error) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if err := fn(sessionFrom(c), c); err != nil {
			c.Err(err)
		}
	}
}

var commands = []*ishell.Cmd{
	{
		Name:    "read",
		Aliases: []string{"r"},
		Help:    "REG: read a PHY register (number or bmcr, bmsr, id1, id2, anar, anlpar, aner, ssr)",
		Func: withArgs(func(s *session, c *ishell.Context) error {
			return s.read(ctxWriter{c}, c.Args)
		}),
	},
	{
		Name:    "write",
		Aliases: []string{"w"},
		Help:    "REG VALUE: write a PHY register",
		Func: withArgs(func(s *session, c *ishell.Context) error {
			return s.write(ctxWriter{c}, c.Args)
		}),
	},
	{
		Name: "dump",
		Help: "read all 32 registers",
		Func: func(c *ishell.Context) { sessionFrom(c).dump(ctxWriter{c}) },
	},
	{
		Name: "mmd",
		Help: "DEV ADDR [VALUE]: read or write a Clause 45 register through registers 13 and 14",
		Func: withArgs(func(s *session, c *ishell.Context) error {
			return s.mmd(ctxWriter{c}, c.Args)
		}),
	},
	{
		Name: "reset",
		Help: "software reset the PHY with the selected driver",
		Func: func(c *ishell.Context) { sessionFrom(c).reset(ctxWriter{c}) },
	},
	{
		Name: "init",
		Help: "initialize the PHY and start auto-negotiation",
		Func: func(c *ishell.Context) { sessionFrom(c).init(ctxWriter{c}) },
	},
	{
		Name:    "link",
		Aliases: []string{"l"},
		Help:    "poll the link state",
		Func:    func(c *ishell.Context) { sessionFrom(c).link(ctxWriter{c}) },
	},
	{
		Name: "id",
		Help: "print the PHY identifier",
		Func: func(c *ishell.Context) { sessionFrom(c).id(ctxWriter{c}) },
	},
	{
		Name: "scan",
		Help: "find PHY addresses answering on the bus",
		Func: withArgs(func(s *session, c *ishell.Context) error {
			return s.scan(ctxWriter{c})
		}),
	},
	{
		Name: "cable",
		Help: "CONDITION: change the simulated link (down, 100full, 100half, 10full, 10half, negotiating)",
		Func: withArgs(func(s *session, c *ishell.Context) error {
			return s.setLink(c.Args)
		}),
	},
	{
		Name: "stats",
		Help: "print bus and PHY counters",
		Func: func(c *ishell.Context) { sessionFrom(c).stats(ctxWriter{c}) },
	},
}

// newShell creates an ishell bound to s.
func newShell(s *session) *ishell.Shell {
	sh := ishell.New()
	sh.Set(sessionKey, s)
	sh.SetPrompt("mdio > ")
	for _, cmd := range commands {
		sh.AddCmd(cmd)
	}
	return sh
}
