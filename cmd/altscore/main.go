package main

import "altscore/internal/cli"

func main() {
	cli.Execute()
}
