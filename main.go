package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mrops-br/simple-shop/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		if !errors.Is(err, cli.ErrCheckoutFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
