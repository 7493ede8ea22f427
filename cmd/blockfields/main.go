package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-blockfields/cmd/blockfields/commands"
)

var version = "dev"

func main() {
	// A missing .env is fine; flags and the real environment still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}

	err := commands.Execute(os.Args[1:], os.Stdout, kong.Vars{"version": version})
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
