package main

import "github.com/bolt-foundry/gambit/internal/cli"

func main() {
	cli.Execute()
}
