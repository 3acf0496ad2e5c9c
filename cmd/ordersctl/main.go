package main

import (
	"fmt"
	"os"

	"github.com/MikeRez0/yporders/internal/adapter/handler/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
