// Command sliderserver runs the Rubiks Slider REST API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourusername/sliderbench/pkg/api"
)

const version = "0.1.0"

func main() {
	// Command line flags
	host := flag.String("host", "localhost", "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", 8080, "Port to listen on")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	maxSessions := flag.Int("max-sessions", 1000, "Maximum live puzzle sessions (0 = unlimited)")
	maxFast := flag.Int("max-workers", 100, "Max concurrent session operations")
	maxSlow := flag.Int("max-streams", 4, "Max concurrent shuffle streams")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Rubiks Slider API Server v%s\n", version)
		os.Exit(0)
	}

	config := api.ServerConfig{
		Host:           *host,
		Port:           *port,
		ReadTimeout:    *readTimeout,
		WriteTimeout:   *writeTimeout,
		IdleTimeout:    60 * time.Second,
		MaxFastWorkers: *maxFast,
		MaxSlowWorkers: *maxSlow,
		MaxSessions:    *maxSessions,
	}

	server := api.NewServer(config, version)

	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
