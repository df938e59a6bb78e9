package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .json scene files to offer")
	workers := flag.Int("workers", 0, "Number of parallel workers per render (0 = auto-detect CPU count)")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir, *workers)

	log.Printf("Sphere Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=simple", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
