package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/vi-todo/core"
)

func main() {
	// Panic Recovery: restore the terminal even if the editor crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// Deferred session teardown has run by the time Execute returns
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-todo: %v\n", err)
		os.Exit(1)
	}
}
