package main

import (
	"context"
	"log"
	"net/http"

	"studio/internal/realtime"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := realtime.LoadConfig()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	hub := realtime.NewHub()
	go hub.Run()

	bridge, err := realtime.NewNATSBridge(cfg.NatsURL, hub)
	if err != nil {
		log.Fatalf("NATS bridge: %v", err)
	}
	defer bridge.Close()

	if err := bridge.Subscribe(); err != nil {
		log.Fatalf("NATS subscribe: %v", err)
	}

	// Transitions also NOTIFY on the job_events channel, so events survive
	// even when the API could not reach NATS.
	if cfg.PostgresDSN != "" {
		ctx := context.Background()
		listener, err := realtime.NewPGListener(ctx, cfg.PostgresDSN, hub)
		if err != nil {
			log.Printf("postgres listener disabled: %v", err)
		} else {
			go listener.Run(ctx)
			defer listener.Close(ctx)
		}
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	log.Printf("Realtime service listening on %s", cfg.RealtimePort)
	if err := http.ListenAndServe(cfg.RealtimePort, nil); err != nil {
		log.Fatalf("server: %v", err)
	}
}
