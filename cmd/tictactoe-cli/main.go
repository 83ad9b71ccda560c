package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/cli"
)

func main() {
	noColor := flag.Bool("no-color", false, "disable colors and screen clearing")
	flag.Parse()

	opts := cli.Options{ClearScreen: !*noColor}
	if *noColor {
		opts.Output = append(opts.Output, termenv.WithProfile(termenv.Ascii))
	}

	fmt.Println(`tic-tac-toe: enter "row col" (0-2), "r" to reset, "q" to quit`)

	if err := cli.Play(os.Stdin, os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
