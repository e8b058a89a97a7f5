package main

import (
	"fmt"
	"os"

	"chessrules/ui"
)

func main() {
	if err := ui.RunChessRules(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
