package vizserver

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/borkshop/markerfield/internal/ecs"
	"github.com/borkshop/markerfield/internal/frame"
	"github.com/borkshop/markerfield/internal/perf"
	"github.com/borkshop/markerfield/internal/scenario"
)

// ErrNoScenario is returned when swapping to an unknown preset.
var ErrNoScenario = errors.New("no such scenario")

// Message is the envelope of everything sent to watchers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// InitData is sent to a watcher when it connects.
type InitData struct {
	Scenarios []string `json:"scenarios"`
	Current   string   `json:"current"`
	TPS       int      `json:"tps"`
}

type swapRequest struct {
	name  string
	reply chan error
}

// Driver owns the running scenario: its goroutine ticks the grid, publishes
// each frame to the watchers, and performs scenario swaps between ticks.
type Driver struct {
	TPS  int
	Seed int64

	logger   *log.Logger
	watchers *WatcherMap
	perf     perf.Perf
	swaps    chan swapRequest

	inst *scenario.Instance

	mu     sync.RWMutex
	latest frame.Frame
}

// NewDriver builds the initial scenario.
func NewDriver(cfg scenario.Config, seed int64, tps int, logger *log.Logger) (*Driver, error) {
	if tps <= 0 {
		return nil, errors.Errorf("invalid tps %d", tps)
	}
	d := &Driver{
		TPS:      tps,
		Seed:     seed,
		logger:   logger,
		watchers: NewWatcherMap(),
		swaps:    make(chan swapRequest),
	}
	d.perf.Init("serve", ecs.ProcFunc(func() { d.inst.Grid.Update() }))
	if err := d.build(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// Perf returns the tick timing of the driver.
func (d *Driver) Perf() *perf.Perf { return &d.perf }

// Watchers returns the connected watchers.
func (d *Driver) Watchers() *WatcherMap { return d.watchers }

// Frame returns the latest published frame.
func (d *Driver) Frame() frame.Frame {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest
}

func (d *Driver) initData() InitData {
	return InitData{
		Scenarios: scenario.Names(),
		Current:   d.Frame().Name,
		TPS:       d.TPS,
	}
}

// Run ticks the scenario TPS times a second until ctx is done, then tears it
// down.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(d.TPS))
	defer ticker.Stop()
	defer func() { d.inst.Teardown() }()
	for {
		select {
		case <-ctx.Done():
			if err := d.perf.Close(); err != nil {
				d.logger.Printf("perf: %v", err)
			}
			return nil
		case req := <-d.swaps:
			req.reply <- d.swap(req.name)
		case <-ticker.C:
			d.Step()
		}
	}
}

// Swap asks the running driver to replace the scenario with the named preset.
func (d *Driver) Swap(ctx context.Context, name string) error {
	req := swapRequest{name: name, reply: make(chan error, 1)}
	select {
	case d.swaps <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Step runs one tick and publishes its frame; it must only be called from the
// goroutine that owns the driver.
func (d *Driver) Step() {
	d.perf.Process()
	d.publish()
}

func (d *Driver) swap(name string) error {
	known := false
	for _, preset := range scenario.Names() {
		known = known || preset == name
	}
	if !known {
		return errors.Wrap(ErrNoScenario, name)
	}
	cfg, err := scenario.Lookup(name)
	if err != nil {
		return err
	}
	return d.build(cfg)
}

func (d *Driver) build(cfg scenario.Config) error {
	inst, err := scenario.Build(cfg, d.Seed)
	if err != nil {
		return err
	}
	if d.inst != nil {
		d.inst.Teardown()
	}
	d.inst = inst
	d.logger.Printf("scenario %s id=%v seed=%d", inst.Name, inst.ID, inst.Seed)
	d.publish()
	return nil
}

func (d *Driver) publish() {
	f := frame.Capture(d.inst.ID.String(), d.inst.Name, d.inst.Grid)
	d.mu.Lock()
	d.latest = f
	d.mu.Unlock()

	if d.watchers.Size() == 0 {
		return
	}
	msg, err := json.Marshal(Message{Type: "frame", Data: f})
	if err != nil {
		d.logger.Printf("encoding frame: %v", err)
		return
	}
	if n := d.watchers.Broadcast(msg); n > 0 {
		d.logger.Printf("dropped tick %d frame for %d watchers", f.Tick, n)
	}
}
