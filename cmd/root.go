package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tallykv/tallykv/cmd/poll"
	"github.com/tallykv/tallykv/cmd/serve"
	"github.com/tallykv/tallykv/cmd/util"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "tallykv",
		Short: "durable poll store",
		Long: fmt.Sprintf(`tallykv (v%s)

A durable key-value poll store written in Go. Polls live in a single
memory-mapped file and survive restarts; votes are tallied atomically
per option.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tallykv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tallykv v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(poll.PollCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http, tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
