package main

import (
	"sensor-dashboard/internal/cli"
)

func main() {
	cli.Execute()
}
