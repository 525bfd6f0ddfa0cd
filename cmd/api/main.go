package main

import (
	"context"
	"log"

	"github.com/orderstack/inventory-service/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("inventory API exited: %v", err)
	}
}
