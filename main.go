package main

import (
	"fmt"
	"os"

	"fjacquet/camt-recon/cmd/balance"
	"fjacquet/camt-recon/cmd/reconcile"
	"fjacquet/camt-recon/cmd/root"
	"fjacquet/camt-recon/cmd/serve"
	"fjacquet/camt-recon/internal/config"
)

func init() {
	// 1. Load .env silently so RECON_* variables reach viper
	config.LoadEnv()

	// 2. Register persistent flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(reconcile.Cmd)
	root.Cmd.AddCommand(balance.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
