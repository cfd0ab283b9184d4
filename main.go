// Package main provides the entry point for the roof planner service.
package main

import (
	"flag"
	"log"
	"time"

	"roof-planner/internal/api"
	"roof-planner/internal/detect"
	"roof-planner/internal/segment"

	"github.com/gin-gonic/gin"
)

const (
	appName    = "Roof Planner"
	appVersion = "0.1.0"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	segmentURL := flag.String("segment-url", "", "base URL of the remote segmentation service (optional)")
	timeout := flag.Duration("timeout", 15*time.Second, "per-request detection/layout deadline")
	debug := flag.Bool("debug", false, "enable verbose request logging")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appName, appVersion)

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	generator := detect.NewGenerator(detect.DefaultOptions())

	var segClient *segment.Client
	if *segmentURL != "" {
		segClient = segment.Shared(*segmentURL, *timeout)
		log.Printf("Remote segmentation back-end: %s", *segmentURL)
	}

	server := api.NewServer(generator, segClient, *timeout)

	log.Printf("Listening on %s", *addr)
	if err := server.Router().Run(*addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
