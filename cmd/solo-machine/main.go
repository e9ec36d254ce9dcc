package main

import (
	"github.com/solo-machine/solo-machine/cmd/solo-machine/cmd"
)

func main() {
	cmd.Execute()
}
