// Package main is the entry point for papersrc.
package main

import (
	"github.com/samber/lo"

	"github.com/papersrc/papersrc/cmd"
	"github.com/papersrc/papersrc/config"
	"github.com/papersrc/papersrc/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
