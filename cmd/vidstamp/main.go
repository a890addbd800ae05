package main

import "github.com/mydehq/vidstamp/internal/cli"

func main() {
	cli.Execute()
}
