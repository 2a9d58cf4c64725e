package main

import (
	"github.com/nhmunna/Swift-E-Commerce/cmd"
)

func main() {
	cmd.Start()
}
