// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2026-present the relaymon authors.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaymon/agent/cmd/agent/subcommands/run"
)

func main() {
	root := &cobra.Command{
		Use:   "agent",
		Short: "relaymon host monitoring agent",
	}
	root.AddCommand(run.Command())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
