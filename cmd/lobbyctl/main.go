package main

import "github.com/avlin/browsercraft-go/internal/cli"

func main() {
	cli.Execute()
}
