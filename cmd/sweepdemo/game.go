package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/collision"
	"github.com/milk9111/sweep/config"
	"github.com/milk9111/sweep/debugdraw"
	"github.com/milk9111/sweep/geom"
	"github.com/milk9111/sweep/script"
	"github.com/milk9111/sweep/tiles"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	accel    = 0.6
	maxSpeed = 12.0
	friction = 0.9
	// dashSpeed is far larger than any wall is thick.
	dashSpeed = 900.0
)

type Game struct {
	cfg        config.Config
	configPath string
	logger     *zap.Logger

	grid      tiles.Grid
	partition *collision.Partition
	resolver  *collision.Resolver
	statics   []*collision.Collider

	body     *collision.Collider
	momentum cp.Vector
	mask     collision.LayerMask

	responseName string
	response     collision.Response
	policy       *script.Policy

	events  []collision.CollisionEvent
	debug   bool
	paused  bool
	ui      *ebitenui.UI
	status  string
	watcher *config.Watcher

	clipboardOK bool
}

func NewGame(cfg config.Config, configPath string, logger *zap.Logger, debug bool) (*Game, error) {
	g := &Game{
		configPath: configPath,
		logger:     logger,
		grid:       newRoom(),
		debug:      debug,
	}

	spawn := collision.NewPoint(2*tileSize, 2*tileSize)
	g.body = collision.NewCollider(spawn, collision.NewBox(0, 0, 20, 20), collision.LayerMask(cfg.Layer("player")))
	g.body.Tag = "player"

	if err := g.apply(cfg); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

// apply (re)builds everything that depends on the config.
func (g *Game) apply(cfg config.Config) error {
	g.cfg = cfg
	g.mask = collision.LayerMask(cfg.Mask("solid", "hazard"))

	if g.partition == nil || g.partition.CellSize() != cfg.Partition.CellSize {
		if g.body.Enabled() {
			g.body.Disable()
		}
		g.partition = collision.NewPartition(cfg.Partition.CellSize, collision.WithLogger(g.logger))
		g.statics = nil
		if err := g.rebuildStatics(); err != nil {
			return err
		}
		g.body.Enable(g.partition)
	}

	g.resolver = collision.NewResolver(g.partition, cfg.Resolver, g.logger)
	g.resolver.OnHit = func(e collision.CollisionEvent) {
		g.events = append(g.events, e)
	}

	if cfg.Script != "" {
		policy, err := script.Load(cfg.Script, script.WithLogger(g.logger))
		if err != nil {
			return err
		}
		g.policy = policy
	}
	return g.setResponse(cfg.Response)
}

func (g *Game) setResponse(name string) error {
	if name == "script" {
		if g.policy == nil {
			return fmt.Errorf("sweepdemo: response %q needs a script", name)
		}
		g.response = g.policy.Response()
		g.responseName = name
		return nil
	}
	r, ok := collision.ResponseByName(name)
	if !ok {
		return fmt.Errorf("sweepdemo: unknown response %q", name)
	}
	g.response = r
	g.responseName = name
	return nil
}

func (g *Game) rebuildStatics() error {
	for _, c := range g.statics {
		c.Disable()
	}
	statics, err := tiles.Build(g.partition, g.grid, tiles.Options{
		SolidLayer:  collision.LayerMask(g.cfg.Layer("solid")),
		HazardLayer: collision.LayerMask(g.cfg.Layer("hazard")),
		Walls:       true,
	})
	if err != nil {
		return err
	}
	g.statics = statics
	return nil
}

// Watch starts reloading the config and script files when they change.
func (g *Game) Watch(paths ...string) {
	var watched []string
	for _, p := range paths {
		if p != "" {
			watched = append(watched, p)
		}
	}
	w, err := config.NewWatcher(watched...)
	if err != nil {
		g.logger.Warn("watch disabled", zap.Error(err))
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watcher", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case g.policy != nil && sameFile(name, g.policy.Path()):
		if err := g.policy.Reload(); err != nil {
			g.logger.Warn("script reload failed", zap.String("path", name), zap.Error(err))
			return
		}
		g.status = "script reloaded"
	case sameFile(name, g.configPath):
		cfg, err := config.Load(g.configPath)
		if err != nil {
			g.logger.Warn("config reload failed", zap.Error(err))
			return
		}
		if err := g.apply(cfg); err != nil {
			g.logger.Warn("config apply failed", zap.Error(err))
			return
		}
		g.status = "config reloaded"
	default:
		return
	}
	g.logger.Info("reloaded", zap.String("path", name))
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyStats()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.toggleTile(ebiten.CursorPosition())
	}

	g.steer()
	g.step()
	return nil
}

func (g *Game) steer() {
	var dir cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dir.Y++
	}

	if dir.X != 0 || dir.Y != 0 {
		g.momentum = g.momentum.Add(dir.Normalize().Mult(accel)).Clamp(maxSpeed)
	} else {
		g.momentum = g.momentum.Mult(friction)
		if g.momentum.LengthSq() < 0.01 {
			g.momentum = cp.Vector{}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.momentum.LengthSq() > 0 {
		g.momentum = g.momentum.Normalize().Mult(dashSpeed)
	}
}

// step moves the body by one frame of momentum. The velocity the resolver
// hands back becomes the new heading, so slides follow walls and bounces
// reverse.
func (g *Game) step() {
	g.events = g.events[:0]
	speed := g.momentum.Length()
	if speed == 0 {
		return
	}

	left := g.resolver.MoveAndCollide(g.body, g.momentum, g.mask, g.response)
	if len(g.events) == 0 {
		if speed > maxSpeed {
			g.momentum = g.momentum.Normalize().Mult(maxSpeed)
		}
		return
	}

	if left.LengthSq() == 0 {
		g.momentum = cp.Vector{}
		return
	}
	g.momentum = left.Normalize().Mult(min(speed, maxSpeed))
}

func (g *Game) toggleTile(sx, sy int) {
	x, y := g.grid.TileAt(debugdraw.Camera{}.ToWorld(sx, sy))
	if x < 0 || y < 0 || x >= g.grid.Width || y >= g.grid.Height {
		return
	}
	next := tiles.Solid
	if g.grid.At(x, y) != tiles.Empty {
		next = tiles.Empty
	}

	tile := geom.Rect{X: float64(x) * tileSize, Y: float64(y) * tileSize, W: tileSize, H: tileSize}
	if next != tiles.Empty && tile.Intersects(g.body.Bounds()) {
		// A body that starts inside a solid walks straight out of it.
		return
	}
	g.grid.Set(x, y, next)
	if err := g.rebuildStatics(); err != nil {
		g.logger.Error("rebuild statics", zap.Error(err))
	}
}

func (g *Game) copyStats() {
	stats := g.partition.Stats()
	text := fmt.Sprintf("cells=%d colliders=%d queries=%d response=%s", stats.Cells, stats.Colliders, stats.Queries, g.responseName)
	if !g.clipboardOK {
		g.status = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.status = "copied: " + text
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff})

	opts := debugdraw.Options{Cells: g.debug, Counts: g.debug}
	debugdraw.Draw(screen, g.partition, opts)
	for _, e := range g.events {
		debugdraw.DrawEvent(screen, opts.Camera, e)
	}
	if g.debug {
		g.drawDashPreview(screen, opts)
		g.drawHover(screen, opts)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  response: %s  speed: %.1f", ebiten.ActualFPS(), g.responseName, g.momentum.Length()), 10, baseHeight-20)
	if g.debug {
		debugdraw.DrawStats(screen, g.partition.Stats(), baseWidth-140, 10)
	}
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 10, baseHeight-36)
	}
	if g.paused {
		g.ui.Draw(screen)
	}
}

// drawDashPreview shows where a dash in the current heading would stop.
func (g *Game) drawDashPreview(screen *ebiten.Image, opts debugdraw.Options) {
	if g.momentum.LengthSq() == 0 {
		return
	}
	e := g.resolver.Cast(g.body, g.momentum.Normalize().Mult(dashSpeed), g.mask)
	if !e.Hit() {
		return
	}
	debugdraw.DrawShape(screen, opts.Camera, g.body.Shape.At(e.Position), opts.ColorFor(g.body))
}

// drawHover traces a line of sight to the cursor and lists the colliders
// under it.
func (g *Game) drawHover(screen *ebiten.Image, opts debugdraw.Options) {
	cx, cy := ebiten.CursorPosition()
	cursor := opts.Camera.ToWorld(cx, cy)
	from := g.body.WorldShape().Center()
	hit, blocked := g.partition.Raycast(from, cursor, g.mask)
	debugdraw.DrawRay(screen, opts.Camera, from, cursor, hit, blocked)

	probe := geom.CircleShape(geom.Circle{Center: cursor, Radius: 1})
	y := cy + 12
	for _, c := range g.partition.QueryShape(probe, collision.AllLayers) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("#%d %s %s", c.ID(), c.Tag, c.Layer), cx+12, y)
		y += 14
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
