package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tileboard/config"
	"github.com/milk9111/tileboard/photos"
	"github.com/milk9111/tileboard/render"
	"github.com/milk9111/tileboard/surface"
	"github.com/milk9111/tileboard/tiles"
	"github.com/milk9111/tileboard/viewport"
)

var backgroundColor = color.RGBA{0xf4, 0xf4, 0xf4, 0xff}

type Game struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger
	cfg    config.Config

	store *tiles.Store
	queue tiles.Queue
	ids   tiles.Sequence

	factory  *photos.Factory
	loader   *photos.Loader
	view     *viewport.Viewport
	surf     *surface.Surface
	renderer *render.Renderer

	ui      *ebitenui.UI
	toolbar *Toolbar
	clip    *Clipboard

	configPath string
	watcher    *config.Watcher

	status status
}

func NewGame(ctx context.Context, cfg config.Config, configPath string, logger *log.Logger) (*Game, error) {
	ctx, cancel := context.WithCancel(ctx)
	g := &Game{
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		store:      tiles.NewStore(),
		view:       viewport.New(toolbarHeight, cfg.BoundsFraction),
		surf:       surface.New(surface.DefaultOptions()),
		renderer:   render.New(),
		configPath: configPath,
	}
	g.applyConfig(cfg)

	g.ui, g.toolbar = buildUI(g.requestTile, g.deleteSelected)
	g.clip = newClipboard(logger)

	if configPath != "" {
		w, err := config.NewWatcher(configPath)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("config: watch %s: %w", configPath, err)
		}
		g.watcher = w
	}
	return g, nil
}

// applyConfig rebuilds everything derived from cfg. Tiles already on the
// panel are kept.
func (g *Game) applyConfig(cfg config.Config) {
	g.cfg = cfg

	client := photos.NewClient(
		cfg.Endpoint,
		cfg.Request.Timeout,
		photos.WithRetry(cfg.Request.Attempts, cfg.Request.Delay),
		photos.WithLogger(g.logger),
	)
	opts := []photos.FactoryOption{
		photos.WithPhotoCount(cfg.PhotoCount),
		photos.WithTileSize(cfg.Tile.Width, cfg.Tile.Height),
	}
	if g.factory == nil {
		opts = append(opts, photos.WithFactoryLogger(g.logger))
		g.factory = photos.NewFactory(client, &g.ids, opts...)
		g.loader = photos.NewLoader(client)
	} else {
		g.factory.Configure(client, opts...)
		g.loader.SetClient(client)
	}

	g.view.SetFraction(cfg.BoundsFraction)
	g.surf.SetOptions(surface.Options{
		Guides:        cfg.Snap.Guides,
		SnapThreshold: cfg.Snap.Threshold,
		MinSize:       cfg.Tile.MinSize,
	})
}

func (g *Game) Close() {
	g.cancel()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) requestTile() {
	g.logger.Debug("requesting tile")
	g.factory.Request(g.ctx)
}

func (g *Game) deleteSelected() {
	g.queue.Push(tiles.RemoveSelected{})
}

func (g *Game) Update() error {
	g.ui.Update()

	g.handleKeys()
	g.handlePointer()
	g.drainFactory()
	g.drainLoader()
	g.drainWatcher()

	g.store.Apply(&g.queue)
	g.renderer.Prune(g.store)

	g.toolbar.SetStatus(g.status.text(g.factory.Pending(), g.store.Len()))
	return nil
}

func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	pos := g.view.ToPanel(mx, my)
	p := surface.Pointer{
		X:        pos.X,
		Y:        pos.Y,
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.view.InPanel(mx, my),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}

	g.queue.Push(g.surf.Update(p, g.store, g.view.Bounds())...)
	ebiten.SetCursorShape(cursorFor(g.surf, p, g.store))
}

func cursorFor(surf *surface.Surface, p surface.Pointer, store *tiles.Store) ebiten.CursorShapeType {
	switch surf.HandleAt(p, store) {
	case surface.HandleN, surface.HandleS:
		return ebiten.CursorShapeNSResize
	case surface.HandleE, surface.HandleW:
		return ebiten.CursorShapeEWResize
	case surface.HandleNE, surface.HandleSW:
		return ebiten.CursorShapeNESWResize
	case surface.HandleNW, surface.HandleSE:
		return ebiten.CursorShapeNWSEResize
	}
	if _, dragging := surf.Active(); dragging {
		return ebiten.CursorShapeMove
	}
	return ebiten.CursorShapeDefault
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.deleteSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.queue.Push(tiles.ClearSelection{})
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySelected()
	}
}

func (g *Game) copySelected() {
	sel, ok := g.store.Selected()
	if !ok {
		return
	}
	t, ok := g.store.Get(sel)
	if !ok {
		return
	}
	if g.clip.CopyText(t.Image) {
		g.status.notify("copied image url")
	}
}

func (g *Game) drainFactory() {
	for {
		select {
		case res := <-g.factory.Results():
			if res.Err != nil {
				g.logger.Error("tile creation failed", "err", res.Err)
				g.status.fail("tile creation failed")
				continue
			}
			g.queue.Push(tiles.AddTile{Tile: res.Tile})
			g.loader.Request(g.ctx, res.Tile.ID, res.Tile.Image)
		default:
			return
		}
	}
}

func (g *Game) drainLoader() {
	for {
		select {
		case img := <-g.loader.Results():
			if img.Err != nil {
				g.logger.Warn("thumbnail failed", "id", img.ID, "err", img.Err)
				g.renderer.SetFailed(img.ID)
				continue
			}
			g.renderer.SetImage(img.ID, img.Img)
		default:
			return
		}
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			cfg, err := config.Load(path)
			if err != nil {
				g.logger.Error("config reload failed, keeping previous settings", "path", path, "err", err)
				g.status.fail("config reload failed")
				continue
			}
			g.applyConfig(cfg)
			g.logger.Info("config reloaded", "path", path)
			g.status.notify("config reloaded")
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("config watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.renderer.Draw(screen, g.view.Panel(), g.view.Bounds(), g.store, g.surf)
	g.ui.Draw(screen)
}

// Layout feeds the window size into the viewport; logical pixels match the
// window so tile geometry is in screen pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.view.Resize(outsideWidth, outsideHeight) {
		g.logger.Debug("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}
