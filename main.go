package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"columns/client"

	"github.com/google/uuid"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[25;0H\n\r\033[?25h"
)

func main() {
	debug := flag.Bool("debug", false, "write debug logs to the log file")
	logFile := flag.String("log", "columns.log", "log file location")
	flag.Parse()

	logger, closeLog := newLogger(*debug, *logFile)
	defer closeLog()

	restore := startRawConsole()
	defer restore()

	cl, err := client.New(logger)
	if err != nil {
		restore()
		log.Fatalf("unable to start the game: %v", err)
	}
	cl.Start()
}

// newLogger returns a JSON logger tagged with a session id. Stdout is
// the game screen, so logs go to a file, and only with -debug.
func newLogger(debug bool, path string) (*slog.Logger, func()) {
	var w io.Writer = io.Discard
	closeLog := func() {}
	if debug {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("unable to open log file: %v", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l.With(slog.String("session", uuid.NewString())), closeLog
}

func startRawConsole() func() {
	fmt.Print(hideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	return func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Fatalf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(showCursor)
	}
}
