package main

import "github.com/devbush/vidrange/internal/adapters/cli"

func main() {
	cli.Execute()
}
