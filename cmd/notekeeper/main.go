// The notekeeper server: an authenticated note-taking web service.
package main

import (
	"log"

	"github.com/patric-chuzhbe/notekeeper/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		log.Panicf("application init error: %v", err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		log.Panicf("application error: %v", err)
	}
}
