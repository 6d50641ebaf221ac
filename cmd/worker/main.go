package main

import "github.com/sovr-labs/go-fp-clearing/cmd/worker/cmd"

func main() {
	cmd.Execute()
}
