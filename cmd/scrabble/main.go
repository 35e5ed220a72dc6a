package main

import "github.com/mcoot/scrabble-go2/internal/cli"

func main() {
	cli.Execute()
}
