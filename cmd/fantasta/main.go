package main

import "github.com/mcoot/fantasta/internal/cli"

func main() {
	cli.Execute()
}
