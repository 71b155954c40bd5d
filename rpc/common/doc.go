// Package common contains the core data structures shared across the RPC
// system: the Message protocol with its factory constructors, the server and
// client configuration structs, and the typed error round-trip between
// server responses and client results.
package common
