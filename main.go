package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"pongbridge/config"
	"pongbridge/room"
	"pongbridge/wsserver"
)

const defaultRoomID = "default"

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rooms := room.NewManager(cfg.Game)
	rooms.GetOrCreate(ctx, defaultRoomID)

	handler := wsserver.NewHandler(ctx, rooms, defaultRoomID)
	mux := http.NewServeMux()
	handler.Register(mux)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("server starting at http://localhost%s (ws endpoint: /ws)", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		rooms.StopAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Println("server stopped")
}
