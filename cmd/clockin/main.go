package main

import (
	"log/slog"
	"os"

	"github.com/aussiebroadwan/clockin/internal/clockin/app"
)

func main() {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize clockin", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("clockin exited", "error", err)
		os.Exit(1)
	}
}
