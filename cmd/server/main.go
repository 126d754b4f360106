package main

import "github.com/ganot/timecard/internal/cli"

func main() {
	cli.Execute()
}
