package main

import (
	"os"

	"stock_dashboard/cmd/quote/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
