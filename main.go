package main

import (
	"github.com/tallykv/tallykv/cmd"
)

func main() {
	cmd.Execute()
}
