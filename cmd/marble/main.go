package main

import (
	"flag"
	"log"
	"marble/internal/config"
	"marble/internal/game"
	"marble/internal/level"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	configPath := flag.String("config", "marble.yaml", "Path to the YAML options file")
	courseName := flag.String("course", "tutorial", "Course to play")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	opts, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("marble: %v", err)
	}
	course, err := level.FindCourse(*courseName)
	if err != nil {
		log.Fatalf("marble: %v", err)
	}

	if err := game.New(opts, course).Run(); err != nil {
		log.Fatalf("marble: %v", err)
	}
}
