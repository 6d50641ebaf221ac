package main

import "github.com/sovr-labs/go-fp-clearing/cmd/consumer/cmd"

func main() {
	cmd.Execute()
}
