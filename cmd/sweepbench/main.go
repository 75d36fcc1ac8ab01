// Command sweepbench drives many bodies through a tile room without a window
// and reports partition load and contact counts as YAML.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/collision"
	"github.com/milk9111/sweep/config"
	"github.com/milk9111/sweep/logging"
	"github.com/milk9111/sweep/script"
	"github.com/milk9111/sweep/tiles"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type report struct {
	Bodies     int     `yaml:"bodies"`
	Frames     int     `yaml:"frames"`
	Response   string  `yaml:"response"`
	CellSize   float64 `yaml:"cell_size"`
	Cells      int     `yaml:"cells"`
	Colliders  int     `yaml:"colliders"`
	Queries    int     `yaml:"queries"`
	Contacts   int     `yaml:"contacts"`
	Escaped    int     `yaml:"escaped"`
	ElapsedMS  float64 `yaml:"elapsed_ms"`
	PerFrameUS float64 `yaml:"per_frame_us"`
}

func main() {
	configPath := flag.String("config", "sweep.yaml", "config file (defaults are used when missing)")
	bodies := flag.Int("bodies", 200, "number of moving bodies")
	frames := flag.Int("frames", 600, "frames to simulate")
	speed := flag.Float64("speed", 40, "maximum per-frame speed; raise it to stress long sweeps")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	r, err := run(cfg, logger, *bodies, *frames, *speed, *seed)
	if err != nil {
		logger.Fatal("sweepbench", zap.Error(err))
	}

	out, err := yaml.Marshal(r)
	if err != nil {
		logger.Fatal("sweepbench: encode report", zap.Error(err))
	}
	fmt.Print(string(out))
	// Only Ignore is allowed to leave the room.
	if r.Escaped > 0 && r.Response != "ignore" {
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger, bodies, frames int, speed float64, seed int64) (report, error) {
	rng := rand.New(rand.NewSource(seed))
	grid := tiles.FromRows(32,
		"##############################",
		"#............................#",
		"#....####..........^^^.......#",
		"#............................#",
		"#.........#.........#####....#",
		"#.........#..................#",
		"#.........#.......^..........#",
		"#...............#######......#",
		"#............................#",
		"##############################",
	)

	p := collision.NewPartition(cfg.Partition.CellSize, collision.WithLogger(logger))
	solid := collision.LayerMask(cfg.Layer("solid"))
	hazard := collision.LayerMask(cfg.Layer("hazard"))
	if _, err := tiles.Build(p, grid, tiles.Options{SolidLayer: solid, HazardLayer: hazard, Walls: true}); err != nil {
		return report{}, err
	}

	response, err := pickResponse(cfg, logger)
	if err != nil {
		return report{}, err
	}

	resolver := collision.NewResolver(p, cfg.Resolver, logger)
	contacts := 0
	resolver.OnHit = func(collision.CollisionEvent) { contacts++ }

	type mover struct {
		c *collision.Collider
		v cp.Vector
	}
	movers := make([]mover, 0, bodies)
	for len(movers) < bodies {
		x := 32 + rng.Float64()*(grid.Bounds().W-64)
		y := 32 + rng.Float64()*(grid.Bounds().H-64)
		var shape collision.Shape
		if rng.Intn(2) == 0 {
			shape = collision.NewBox(0, 0, 6, 6)
		} else {
			shape = collision.NewCircle(0, 0, 3)
		}
		c := collision.NewCollider(collision.NewPoint(x, y), shape, collision.LayerMask(cfg.Layer("player")))
		if len(p.QueryShape(c.WorldShape(), solid|hazard)) > 0 {
			continue
		}
		c.Enable(p)
		angle := rng.Float64() * 2 * math.Pi
		movers = append(movers, mover{c: c, v: cp.ForAngle(angle).Mult(1 + rng.Float64()*speed)})
	}

	p.ResetStats()
	start := time.Now()
	for f := 0; f < frames; f++ {
		for i := range movers {
			m := &movers[i]
			left := resolver.MoveAndCollide(m.c, m.v, solid|hazard, response)
			if left.LengthSq() > 0 {
				m.v = left.Normalize().Mult(m.v.Length())
			} else {
				m.v = m.v.Neg()
			}
		}
	}
	elapsed := time.Since(start)

	inside := grid.Bounds()
	escaped := 0
	for _, m := range movers {
		b := m.c.Bounds()
		if b.X < inside.X || b.Y < inside.Y || b.X+b.W > inside.X+inside.W || b.Y+b.H > inside.Y+inside.H {
			escaped++
		}
	}

	stats := p.Stats()
	return report{
		Bodies:     bodies,
		Frames:     frames,
		Response:   cfg.Response,
		CellSize:   p.CellSize(),
		Cells:      stats.Cells,
		Colliders:  stats.Colliders,
		Queries:    stats.Queries,
		Contacts:   contacts,
		Escaped:    escaped,
		ElapsedMS:  float64(elapsed.Microseconds()) / 1000,
		PerFrameUS: float64(elapsed.Microseconds()) / float64(max(frames, 1)),
	}, nil
}

func pickResponse(cfg config.Config, logger *zap.Logger) (collision.Response, error) {
	if cfg.Response == "script" {
		policy, err := script.Load(cfg.Script, script.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return policy.Response(), nil
	}
	r, ok := collision.ResponseByName(cfg.Response)
	if !ok {
		return nil, fmt.Errorf("sweepbench: unknown response %q", cfg.Response)
	}
	return r, nil
}
