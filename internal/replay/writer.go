// Package replay records a simulation run to disk: gameplay events as
// snappy-compressed JSON lines and per-tick ball state as a zstd-compressed
// binary stream. Two recordings of the same course and input can be
// compared tick by tick to check determinism.
package replay

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"marble/internal/level"
	"marble/internal/sim"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

const (
	Version      = 1
	ManifestFile = "manifest.json"
	EventsFile   = "events.jsonl.sz"
	TicksFile    = "ticks.bin.zst"
)

var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var ErrClosed = errors.New("replay: writer closed")

type Manifest struct {
	Version        int    `json:"version"`
	CreatedAt      string `json:"created_at"`
	Course         string `json:"course"`
	TicksPerSecond int    `json:"ticks_per_second"`
	EventsPath     string `json:"events_path"`
	TicksPath      string `json:"ticks_path"`
}

// Event is one gameplay occurrence.
type Event struct {
	Level  int     `json:"level"`
	Tick   int64   `json:"tick"`
	Time   float64 `json:"time"`
	Type   string  `json:"type"`
	Detail string  `json:"detail,omitempty"`
}

// TickRecord is the ball state after one fixed step. Its layout is the
// on-disk little-endian record.
type TickRecord struct {
	Level    uint32
	Tick     uint64
	Time     float64
	Position rl.Vector3
	Velocity rl.Vector3
}

type Writer struct {
	mu          sync.Mutex
	dir         string
	eventFile   *os.File
	eventStream *snappy.Writer
	tickFile    *os.File
	tickStream  *zstd.Encoder
	ticks       int
	events      int
	err         error
	closed      bool
	detach      []func()
}

// NewWriter creates root/<name>-<timestamp> and opens both streams.
func NewWriter(root, course string, ticksPerSecond int, clock func() time.Time) (*Writer, Manifest, error) {
	if root == "" {
		return nil, Manifest{}, fmt.Errorf("replay root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}

	cleaned := nameCleaner.ReplaceAllString(course, "")
	if cleaned == "" {
		cleaned = "run"
	}
	created := clock().UTC()
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", cleaned, created.Format("20060102T150405Z")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, Manifest{}, err
	}

	manifest := Manifest{
		Version:        Version,
		CreatedAt:      created.Format(time.RFC3339Nano),
		Course:         course,
		TicksPerSecond: ticksPerSecond,
		EventsPath:     EventsFile,
		TicksPath:      TicksFile,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, Manifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return nil, Manifest{}, err
	}

	eventFile, err := os.Create(filepath.Join(dir, EventsFile))
	if err != nil {
		return nil, Manifest{}, err
	}
	tickFile, err := os.Create(filepath.Join(dir, TicksFile))
	if err != nil {
		eventFile.Close()
		return nil, Manifest{}, err
	}
	tickStream, err := zstd.NewWriter(tickFile)
	if err != nil {
		eventFile.Close()
		tickFile.Close()
		return nil, Manifest{}, err
	}

	return &Writer{
		dir:         dir,
		eventFile:   eventFile,
		eventStream: snappy.NewBufferedWriter(eventFile),
		tickFile:    tickFile,
		tickStream:  tickStream,
	}, manifest, nil
}

// Directory is the bundle directory.
func (w *Writer) Directory() string {
	return w.dir
}

func (w *Writer) AppendEvent(e Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := w.eventStream.Write(append(line, '\n')); err != nil {
		return err
	}
	w.events++
	return nil
}

func (w *Writer) AppendTick(r TickRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if err := binary.Write(w.tickStream, binary.LittleEndian, r); err != nil {
		return err
	}
	w.ticks++
	return nil
}

// Counts reports how many ticks and events were written.
func (w *Writer) Counts() (ticks, events int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ticks, w.events
}

// Attach records l's ticks and events under the given 1-based level index.
// Write failures are kept and returned by Close.
func (w *Writer) Attach(l *level.Level, index int) {
	keep := func(err error) {
		if err == nil {
			return
		}
		w.mu.Lock()
		if w.err == nil {
			w.err = err
		}
		w.mu.Unlock()
	}
	event := func(typ, detail string) {
		keep(w.AppendEvent(Event{
			Level:  index,
			Tick:   l.Loop.Clock.Ticks(),
			Time:   l.Loop.Clock.AccumulatedTime(),
			Type:   typ,
			Detail: detail,
		}))
	}

	event("level", l.Name)
	postStep := l.Loop.PostStep.AddListener(func(t sim.Tick) {
		keep(w.AppendTick(TickRecord{
			Level:    uint32(index),
			Tick:     uint64(t.Index),
			Time:     t.Time,
			Position: l.Ball.Position,
			Velocity: l.Ball.Velocity,
		}))
	})
	coin := l.OnCoin.AddListener(func() { event("coin", "") })
	star := l.OnStar.AddListener(func() { event("star", "") })
	death := l.OnDeath.AddListener(func() { event("death", "") })
	goal := l.OnGoal.AddListener(func() { event("goal", "") })
	complete := l.OnComplete.AddListener(func() { event("complete", "") })
	bonk := l.OnBonk.AddListener(func(b level.Bonk) {
		event("bonk", fmt.Sprintf("%s %.2f", b.Surface.Name, b.Intensity))
	})

	w.mu.Lock()
	w.detach = append(w.detach, func() {
		l.Loop.PostStep.RemoveListener(postStep)
		l.OnCoin.RemoveListener(coin)
		l.OnStar.RemoveListener(star)
		l.OnDeath.RemoveListener(death)
		l.OnGoal.RemoveListener(goal)
		l.OnComplete.RemoveListener(complete)
		l.OnBonk.RemoveListener(bonk)
	})
	w.mu.Unlock()
}

// Close detaches from every level, then flushes and closes both streams.
// It returns the first error seen, including any recorded while attached.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	for _, detach := range w.detach {
		detach()
	}
	w.detach = nil

	firstErr := w.err
	for _, closer := range []func() error{
		w.eventStream.Close,
		w.eventFile.Close,
		w.tickStream.Close,
		w.tickFile.Close,
	} {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
