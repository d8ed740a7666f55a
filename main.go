package main

import (
	"os"

	"github.com/planora/planora/internal/app"
	log "github.com/sirupsen/logrus"

	_ "github.com/planora/planora/docs"
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// @title Planora Event Scheduler API
// @version 1.0
// @description REST service for scheduling single and weekly-recurring calendar events.
// @BasePath /
func main() {
	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
