package main

import "github.com/mcoot/forceteam/internal/cli"

func main() {
	cli.Execute()
}
