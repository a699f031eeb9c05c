package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	// Interrupted runs exit quietly; everything else gets one line on stderr.
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "exportfix: %v\n", err)
	}
	os.Exit(1)
}
