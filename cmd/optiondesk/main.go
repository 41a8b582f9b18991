package main

import (
	"os"

	"optiondesk/cmd/optiondesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
