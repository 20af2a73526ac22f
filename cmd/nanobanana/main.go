package main

import (
	"os"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
