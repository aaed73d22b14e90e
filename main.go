package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pagecarve/pcerr"
)

func main() {
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		fmt.Fprintln(os.Stderr, "interrupted")
		os.Exit(130)
	}()

	args, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		showUsage()
		os.Exit(1)
	}

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(pcerr.ExitCode(err))
	}
}
