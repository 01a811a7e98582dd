package scanning

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"tunesleuth/src/features/config"
	"tunesleuth/src/features/jobs"
	"tunesleuth/src/music"
)

func testApp(service *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, service, jobs.NewService(&config.Jobs{}))
	return app
}

// The root path must always resolve, even before the first scan.
func TestHomeBeforeScan(t *testing.T) {
	service := NewService(testConfig(t.TempDir()), NewMockTagReader(), &MockProber{}, nil, nil)
	app := testApp(service)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET / status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var stats music.LibraryStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if stats.TotalTracks != 0 {
		t.Errorf("TotalTracks = %d, want 0 before any scan", stats.TotalTracks)
	}
}

func TestHomeAfterScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.mp3")
	writeFile(t, root, "b.mp3")

	service := NewService(testConfig(root), NewMockTagReader(), &MockProber{}, nil, nil)
	if _, _, err := service.Scan(context.Background(), nil); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	app := testApp(service)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET / status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var stats music.LibraryStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if stats.TotalTracks != 2 {
		t.Errorf("TotalTracks = %d, want 2", stats.TotalTracks)
	}
}
