package main

import (
	"fmt"

	"gofish/chains"

	"github.com/urfave/cli/v2"
)

func chainsAction(c *cli.Context) error {
	table, err := chains.Load(c.String("chains"))
	if err != nil {
		return err
	}
	for _, name := range table.Names() {
		chain, err := table.Lookup(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == table.Default {
			marker = "*"
		}
		fmt.Fprintf(c.App.Writer, "%s %-16s %s\n", marker, name, chain.String())
	}
	return nil
}
