package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"gopkg.in/yaml.v3"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/captions"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/cleanup"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/handlers"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/storage"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/types"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/vimeo"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"server"`

	Vimeo struct {
		BaseURL                string `yaml:"base_url"`
		UserAgent              string `yaml:"user_agent"`
		Referer                string `yaml:"referer"`
		FetchTimeoutSeconds    int    `yaml:"fetch_timeout_seconds"`
		MaxTrackSizeMB         int    `yaml:"max_track_size_mb"`
		ResolverTimeoutSeconds int    `yaml:"resolver_timeout_seconds"`
	} `yaml:"vimeo"`

	Sanitizer struct {
		Fillers []string `yaml:"fillers"`
	} `yaml:"sanitizer"`

	Registry struct {
		CleanupIntervalMinutes int `yaml:"cleanup_interval_minutes"`
		MaxAgeHours            int `yaml:"max_age_hours"`
	} `yaml:"registry"`

	GoogleDrive struct {
		CredentialsFile string `yaml:"credentials_file"`
		TokenFile       string `yaml:"token_file"`
		FolderName      string `yaml:"folder_name"`
	} `yaml:"google_drive"`

	Limits struct {
		MaxRequestSizeMB int `yaml:"max_request_size_mb"`
	} `yaml:"limits"`
}

func main() {
	// Load configuration
	config, err := loadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Custom logger setup
	logBuffer := &LogBuffer{
		lines: make([]string, 0, 1000),
	}
	multiWriter := io.MultiWriter(os.Stdout, logBuffer)
	log.SetOutput(multiWriter)

	// Initialize components
	log.Println("Initializing components...")

	// Filler normalizer
	normalizer := captions.NewNormalizer(config.Sanitizer.Fillers)
	log.Printf("Filler vocabulary: %v", normalizer.Fillers())

	// Player CDN client
	client := vimeo.NewClient(
		config.Vimeo.BaseURL,
		config.Vimeo.UserAgent,
		config.Vimeo.Referer,
		time.Duration(config.Vimeo.FetchTimeoutSeconds)*time.Second,
		int64(config.Vimeo.MaxTrackSizeMB)*1024*1024,
	)

	// Track resolver (headless Chrome)
	resolver := vimeo.NewResolver(time.Duration(config.Vimeo.ResolverTimeoutSeconds) * time.Second)

	// Session registry
	registry, err := storage.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize registry: %v", err)
	}
	defer registry.Close()

	// Google Drive client (optional - may fail if credentials not set up)
	var driveClient *storage.DriveClient
	if _, err := os.Stat(config.GoogleDrive.CredentialsFile); err == nil {
		driveClient, err = storage.NewDriveClient(
			config.GoogleDrive.CredentialsFile,
			config.GoogleDrive.TokenFile,
			config.GoogleDrive.FolderName,
		)
		if err != nil {
			log.Printf("WARNING: Google Drive not available: %v", err)
			log.Println("Exports can still be downloaded directly")
			driveClient = nil
		} else {
			log.Println("Google Drive integration enabled")
		}
	} else {
		log.Println("Google Drive credentials not found - uploads disabled")
	}

	// Cleanup scheduler
	cleanupScheduler := cleanup.NewScheduler(
		registry,
		config.Registry.CleanupIntervalMinutes,
		config.Registry.MaxAgeHours,
	)
	cleanupScheduler.Start()
	defer cleanupScheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: config.Limits.MaxRequestSizeMB * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Initialize handlers
	transcriptHandler := handlers.NewTranscriptHandler(client, normalizer, registry)
	exportHandler := handlers.NewExportHandler(registry)
	resolveHandler := handlers.NewResolveHandler(resolver)
	previewHandler := handlers.NewPreviewHandler(normalizer)
	driveHandler := handlers.NewDriveHandler(driveClient, registry)

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		count, _ := registry.Count()
		return c.JSON(fiber.Map{
			"status":      "healthy",
			"version":     "1.0.0",
			"transcripts": count,
			"gdrive":      driveClient != nil,
		})
	})

	app.Post("/transcript", transcriptHandler.Handle)
	app.Post("/resolve", resolveHandler.Handle)
	app.Post("/transcripts/:id/gdrive", driveHandler.Handle)

	// WebSocket route
	app.Get("/ws/preview", websocket.New(previewHandler.Handle))

	// List session transcripts
	app.Get("/transcripts", func(c *fiber.Ctx) error {
		limit := 50 // Default limit
		transcripts, err := registry.List(limit)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if transcripts == nil {
			transcripts = []*types.Transcript{}
		}
		return c.JSON(transcripts)
	})

	// Get one transcript
	app.Get("/transcripts/:id", func(c *fiber.Ctx) error {
		transcript, err := registry.Get(c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if transcript == nil {
			return c.Status(404).JSON(fiber.Map{
				"error": "Transcript not found",
				"code":  "ERR_NOT_FOUND",
			})
		}
		return c.JSON(transcript)
	})

	app.Get("/transcripts/:id/export/:format", exportHandler.Handle)

	// Get server logs
	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"logs": logBuffer.GetLogs(),
		})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	log.Printf("🚀 Server starting on %s", addr)
	log.Println("📝 Endpoints:")
	log.Println("   POST /transcript - Fetch and clean a caption track")
	log.Println("   POST /resolve    - List caption tracks for a video URL")
	log.Println("   GET  /ws/preview - WebSocket paste preview")
	log.Println("   GET  /transcripts - List session transcripts")
	log.Println("   GET  /transcripts/:id - Get one transcript")
	log.Println("   GET  /transcripts/:id/export/:format - Download as txt/docx/pdf")
	log.Println("   POST /transcripts/:id/gdrive - Upload an export to Google Drive")
	log.Println("   GET  /logs       - View server logs")
	log.Println("   GET  /health     - Health check")

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// LogBuffer captures logs in memory
type LogBuffer struct {
	lines []string
	mu    sync.Mutex
}

func (lb *LogBuffer) Write(p []byte) (n int, err error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	// Append new line
	lb.lines = append(lb.lines, string(p))

	// Keep last 1000 lines
	if len(lb.lines) > 1000 {
		lb.lines = lb.lines[len(lb.lines)-1000:]
	}

	return len(p), nil
}

func (lb *LogBuffer) GetLogs() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	// Return copy of slice
	logs := make([]string, len(lb.lines))
	copy(logs, lb.lines)
	return logs
}

// loadConfig loads configuration from YAML file
func loadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

// applyDefaults fills zero values so a partial config file still works
func applyDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Vimeo.BaseURL == "" {
		config.Vimeo.BaseURL = "https://player.vimeo.com"
	}
	if config.Vimeo.UserAgent == "" {
		config.Vimeo.UserAgent = "Mozilla/5.0"
	}
	if config.Vimeo.Referer == "" {
		config.Vimeo.Referer = "https://vimeo.com/"
	}
	if config.Vimeo.FetchTimeoutSeconds == 0 {
		config.Vimeo.FetchTimeoutSeconds = 30
	}
	if config.Vimeo.MaxTrackSizeMB == 0 {
		config.Vimeo.MaxTrackSizeMB = 10
	}
	if config.Vimeo.ResolverTimeoutSeconds == 0 {
		config.Vimeo.ResolverTimeoutSeconds = 60
	}
	if config.Registry.CleanupIntervalMinutes == 0 {
		config.Registry.CleanupIntervalMinutes = 60
	}
	if config.Registry.MaxAgeHours == 0 {
		config.Registry.MaxAgeHours = 24
	}
	if config.Limits.MaxRequestSizeMB == 0 {
		config.Limits.MaxRequestSizeMB = 5
	}
}
