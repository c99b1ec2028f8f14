package main

import (
	"log"
	"net/http"
	"os"

	"riskbridge/internal/config"
	"riskbridge/internal/engine"
	"riskbridge/internal/webserver"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create staging directory for uploaded datasets
	if err := os.MkdirAll(cfg.StagingDir, 0755); err != nil {
		log.Fatal("Failed to create staging directory:", err)
	}

	if err := webserver.LoadTranslations(); err != nil {
		log.Fatal("Failed to load translations:", err)
	}

	analyzer := engine.NewAnalyzer(cfg.EngineBinary, cfg.StagingDir, cfg.EngineTimeout())
	srv := webserver.NewServer(analyzer, cfg.Assets, cfg.MaxUploadBytes)

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.HomeHandler)
	mux.HandleFunc("/analyze", srv.AnalyzeHandler)

	// Serve embedded static files (CSS, JS)
	mux.Handle("/www/", http.StripPrefix("/www/", webserver.StaticFileServer()))

	handler := webserver.LoggingMiddleware(webserver.CompressionMiddleware(mux))

	log.Println("Server started on", cfg.ListenAddr)
	log.Println("Engine binary:", cfg.EngineBinary)

	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatal("Server startup error:", err)
	}
}
