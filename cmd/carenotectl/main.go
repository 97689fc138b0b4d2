package main

import (
	"os"
)

// version 构建时通过 ldflags 注入
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
