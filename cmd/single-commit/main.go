package main

import "github.com/cbout22/single-commit/internal/cli"

func main() {
	cli.Execute()
}
