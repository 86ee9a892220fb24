package main

import (
	"log"

	"github.com/savedsphere/sphered/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ sphered failed to start: %v", err)
	}
}
