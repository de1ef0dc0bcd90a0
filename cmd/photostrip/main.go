package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/term"

	"github.com/depeter/photostrip/assets/icon"
	"github.com/depeter/photostrip/internal/app"
	"github.com/depeter/photostrip/internal/cache"
	"github.com/depeter/photostrip/internal/config"
	"github.com/depeter/photostrip/internal/jellyfin"
	"github.com/depeter/photostrip/internal/photos"
	"github.com/depeter/photostrip/internal/ui"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := ui.InitFonts(); err != nil {
		log.Fatalf("Failed to init fonts: %v", err)
	}

	// Init image cache, sized for the expanded row
	cacheDir, err := config.CacheDir()
	if err != nil {
		cacheDir = filepath.Join(os.TempDir(), "photostrip", "images")
	}
	imgCache, err := cache.NewImageCache(cacheDir, int(cfg.Picker.ExpandedCellSideSize*2))
	if err != nil {
		log.Fatalf("Failed to init image cache: %v", err)
	}

	src, err := librarySource(cfg, imgCache)
	if err != nil {
		log.Fatalf("Failed to open library: %v", err)
	}

	game := app.NewGame(cfg, photos.NewService(src), imgCache)
	game.Start()

	// Configure window
	ebiten.SetWindowSize(cfg.UI.Width, cfg.UI.Height)
	ebiten.SetWindowTitle("PhotoStrip")
	ebiten.SetWindowIcon(icon.Generate())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.UI.Fullscreen)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func librarySource(cfg *config.Config, imgCache *cache.ImageCache) (photos.Source, error) {
	if cfg.Library.Source == "dir" {
		return photos.DirSource{Dir: cfg.Library.Dir}, nil
	}
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server.url is not set")
	}

	client := jellyfin.NewClient(cfg.Server.URL)
	client.ThumbHeight = int(cfg.Picker.ExpandedCellSideSize)
	if cfg.Server.Token != "" {
		client.SetToken(cfg.Server.Token, cfg.Server.UserID)
	} else if err := login(client, cfg); err != nil {
		return nil, err
	}
	imgCache.SetHeader(client.AuthHeader())
	return client, nil
}

// login asks for the password on the terminal and stores the session token.
func login(client *jellyfin.Client, cfg *config.Config) error {
	if cfg.Server.Username == "" {
		return fmt.Errorf("server.username is not set")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("no saved token and no terminal to ask for a password")
	}

	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", cfg.Server.Username, client.ServerURL())
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if err := client.Authenticate(context.Background(), cfg.Server.Username, string(pw)); err != nil {
		return err
	}

	cfg.Server.URL = client.ServerURL()
	cfg.Server.Token = client.Token()
	cfg.Server.UserID = client.UserID()
	if err := cfg.Save(); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return nil
}
