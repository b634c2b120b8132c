// Package config loads server settings from the environment, with an
// optional .env file picked up at startup.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"pongbridge/canvas"
	"pongbridge/game"
)

// Config is the full server configuration.
type Config struct {
	Addr string
	Game game.Config
}

// Load reads the .env file if present and resolves every knob from the
// environment, falling back to the stock match setup.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	g := game.DefaultConfig()
	g.Canvas = canvas.Canvas{
		Width:  envFloat("CANVAS_WIDTH", g.Canvas.Width),
		Height: envFloat("CANVAS_HEIGHT", g.Canvas.Height),
	}
	g.TickInterval = envDuration("TICK_INTERVAL", g.TickInterval)
	g.Staleness = envDuration("PREDICTION_STALENESS", g.Staleness)
	g.PaddleWidth = envFloat("PADDLE_WIDTH", g.PaddleWidth)
	g.PaddleHeight = envFloat("PADDLE_HEIGHT", g.PaddleHeight)
	g.PaddleSpeed = envFloat("PADDLE_SPEED", g.PaddleSpeed)
	g.BallRadius = envFloat("BALL_RADIUS", g.BallRadius)
	g.BallSpeed = envFloat("BALL_SPEED", g.BallSpeed)

	return Config{
		Addr: envString("LISTEN_ADDR", ":8080"),
		Game: g,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid value for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid value for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
