// Package cmd implements the command-line interface for the tallykv durable
// poll store. It provides a hierarchical command structure with operations
// for running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - poll: Commands for poll operations (create, get, list, edit, del, vote)
//   - serve: Commands for starting and configuring the tallykv server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See tallykv -help for a list of all commands.
package cmd
