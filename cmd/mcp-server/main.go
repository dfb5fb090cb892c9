package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	addr := flag.String("http", "", "Serve streamable HTTP on this address instead of stdio")
	flag.Parse()

	// stdout carries the stdio protocol
	log.SetOutput(os.Stderr)
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		log.Fatal("DB_NAME is required")
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	s := store.New(db)
	svc := stats.New(s, metrics.NewService(), stats.DefaultConfig())
	server := newServer(&tools{store: s, stats: svc, rules: stats.DefaultConfig().Rules})

	if *addr != "" {
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{JSONResponse: true})
		log.Info("MCP HTTP server listening", "addr", *addr)
		if err := http.ListenAndServe(*addr, handler); err != nil {
			log.Fatal("MCP HTTP server failed", "error", err)
		}
		return
	}

	log.Info("MCP server running on stdio")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal("MCP server failed", "error", err)
	}
}
