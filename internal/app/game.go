package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/photostrip/internal/cache"
	"github.com/depeter/photostrip/internal/config"
	"github.com/depeter/photostrip/internal/geometry"
	"github.com/depeter/photostrip/internal/gesture"
	"github.com/depeter/photostrip/internal/interaction"
	"github.com/depeter/photostrip/internal/photos"
	"github.com/depeter/photostrip/internal/picker"
	"github.com/depeter/photostrip/internal/ui"
)

// pageResult is a page loaded in the background.
type pageResult struct {
	images []geometry.Image
	reset  bool
	err    error
}

// Game implements ebiten.Game and drives one picker.
type Game struct {
	Config *config.Config
	Photos *photos.Service
	Cache  *cache.ImageCache
	Picker *picker.Picker
	Strip  *ui.StripView

	// Out receives the selected URIs on exit.
	Out io.Writer

	Width, Height int

	pointer ui.Pointer
	tracker *gesture.Tracker
	start   time.Time
	frame   interaction.Frame

	ctx     context.Context
	cancel  context.CancelFunc
	pages   chan pageResult
	loading bool
	lastErr error
}

// NewGame creates the Game with all dependencies.
func NewGame(cfg *config.Config, svc *photos.Service, imgCache *cache.ImageCache) *Game {
	pc := cfg.Picker
	layout := pc.Layout(float64(cfg.UI.Width))
	p := picker.New(layout, pc.Mode(), pc.EngineConfig(layout.ContainerWidth))

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		Config:  cfg,
		Photos:  svc,
		Cache:   imgCache,
		Picker:  p,
		Strip:   ui.NewStripView(p, imgCache),
		Out:     os.Stdout,
		Width:   cfg.UI.Width,
		Height:  cfg.UI.Height,
		tracker: gesture.NewTracker(),
		start:   time.Now(),
		ctx:     ctx,
		cancel:  cancel,
		pages:   make(chan pageResult, 4),
	}
	g.Strip.X = pc.ContainerPadding
	g.Strip.Y = ui.StripTop
	p.OnEndReached(g.loadMore)
	return g
}

// Start loads the first page in the background.
func (g *Game) Start() {
	g.loading = true
	lib := g.Config.Library
	go func() {
		images, err := g.Photos.FetchPhotos(g.ctx, lib.Kind(), lib.PageSize, "")
		g.pages <- pageResult{images: images, reset: true, err: err}
	}()
}

// loadMore is the end-reached callback. Service.Next ignores calls while a
// page is already loading.
func (g *Game) loadMore() {
	if g.loading || !g.Photos.HasNextPage() {
		return
	}
	g.loading = true
	go func() {
		images, err := g.Photos.Next(g.ctx)
		g.pages <- pageResult{images: images, err: err}
	}()
}

func (g *Game) drainPages() {
	for {
		select {
		case res := <-g.pages:
			g.loading = false
			if res.err != nil {
				log.Printf("Failed to load photos: %v", res.err)
				g.lastErr = res.err
				continue
			}
			if g.lastErr != nil {
				g.lastErr = nil
				g.retryThumbnails()
			}
			if res.reset {
				g.Picker.SetImages(res.images)
			} else if len(res.images) > 0 {
				all := append(append([]geometry.Image(nil), g.Picker.Images()...), res.images...)
				g.Picker.SetImages(all)
			}
		default:
			return
		}
	}
}

// retryThumbnails requests failed thumbnails again, e.g. once the server is
// reachable after an error.
func (g *Game) retryThumbnails() {
	if n := g.Strip.Retry(); n > 0 {
		log.Printf("Retrying %d thumbnails", n)
	}
	g.Cache.ClearFailed()
}

// reload retries failed thumbnails and the page load that failed last.
func (g *Game) reload() {
	g.retryThumbnails()
	if g.lastErr == nil || g.loading {
		return
	}
	if len(g.Picker.Images()) == 0 {
		g.Start()
		return
	}
	g.loadMore()
}

func (g *Game) Update() error {
	if quit := g.handleKeys(); quit {
		g.cancel()
		g.printSelection()
		return ebiten.Termination
	}
	ui.ToggleDebugOverlay()

	g.drainPages()
	g.handlePointer()

	g.frame = g.Picker.Step(time.Since(g.start))
	g.Strip.Update(g.frame)
	return nil
}

func (g *Game) handlePointer() {
	pressed, x, y := g.pointer.State()
	now := time.Since(g.start)
	ev := g.tracker.Update(pressed, x, y, now)
	if ev.Changed {
		g.Picker.HandleGesture(ev.Sample)
	}
	if !ev.Tap {
		return
	}

	cx, cy := g.Strip.ContainerPoint(ev.X, ev.Y)
	if cy < 0 || cy > g.Strip.Height(g.frame.Progress) {
		return
	}
	if i := g.Picker.CellAt(cx, g.frame); i >= 0 {
		g.Picker.Select(i)
	}
}

func (g *Game) printSelection() {
	for _, img := range g.Picker.SelectedImages() {
		fmt.Fprintln(g.Out, img.URI)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.ColorBackground)

	total := int64(len(g.Picker.Images()))
	title := fmt.Sprintf("%s photos, tap one to select it", humanize.Comma(total))
	if n := len(g.Picker.Selected()); n > 0 {
		title = fmt.Sprintf("%s of %s selected, Esc to finish", humanize.Comma(int64(n)), humanize.Comma(total))
	}
	ui.DrawText(screen, title, g.Strip.X, 12, ui.FontSizeBody, ui.ColorTextSecondary)

	g.Strip.Draw(screen, g.frame)

	statusY := g.Strip.Y + g.Strip.Height(g.frame.Progress) + 12
	switch {
	case g.lastErr != nil:
		ui.DrawText(screen, g.lastErr.Error()+" (R to retry)", g.Strip.X, statusY, ui.FontSizeSmall, ui.ColorError)
	case g.loading:
		ui.DrawText(screen, "Loading...", g.Strip.X, statusY, ui.FontSizeSmall, ui.ColorTextMuted)
	case len(g.Picker.Images()) == 0:
		ui.DrawText(screen, "No photos", g.Strip.X, statusY, ui.FontSizeSmall, ui.ColorTextMuted)
	}

	ui.DrawDebugOverlay(screen, g.frame, ui.DebugInfo{
		Gesture:   g.tracker.Phase(),
		Images:    len(g.Picker.Images()),
		Selected:  g.Picker.Selected(),
		RowWidth:  g.Picker.Engine().RowWidth(),
		Container: g.Picker.Layout().ContainerWidth,
		MorePages: g.Photos.HasNextPage(),
		Loading:   g.loading,
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.Width {
		g.Picker.SetContainerWidth(geometry.ContainerWidth(float64(outsideWidth), g.Config.Picker.ContainerPadding))
	}
	g.Width, g.Height = outsideWidth, outsideHeight
	return g.Width, g.Height
}
