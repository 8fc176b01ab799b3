package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-editorbind/pkg/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := environment{
		fields:   os.Getenv("EDITORBIND_FIELDS"),
		logLevel: os.Getenv("EDITORBIND_LOG_LEVEL"),
	}
	err := run(ctx, os.Args[1:], env, streams{
		in:  os.Stdin,
		out: os.Stdout,
		err: os.Stderr,
	}, prompt.NewSurveyDriver())
	if errors.Is(err, prompt.ErrAborted) {
		os.Exit(130)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "editorbind-cli: %v\n", err)
		os.Exit(1)
	}
}
