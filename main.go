package main

import (
	"os"

	"github.com/prasetya/ujian/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
