package main

import (
	"fmt"
	"os"

	internal "github.com/etesami/earthquake-feed/svc-feed-viewer/internal"
)

func main() {
	if err := internal.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
