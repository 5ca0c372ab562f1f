package main

import "github.com/dmitrijs2005/sessionkeeper/internal/client/cli"

func main() {
	cli.Main()
}
