package replay

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

func ReadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version != Version {
		return Manifest{}, fmt.Errorf("unsupported replay version %d", m.Version)
	}
	return m, nil
}

func ReadEvents(dir string) ([]Event, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, m.EventsPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(snappy.NewReader(f))
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("event %d: %w", len(events)+1, err)
		}
		events = append(events, e)
	}
	return events, scanner.Err()
}

func ReadTicks(dir string) ([]TickRecord, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, m.TicksPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var ticks []TickRecord
	for {
		var r TickRecord
		err := binary.Read(dec, binary.LittleEndian, &r)
		if errors.Is(err, io.EOF) {
			return ticks, nil
		}
		if err != nil {
			return ticks, fmt.Errorf("tick %d: %w", len(ticks)+1, err)
		}
		ticks = append(ticks, r)
	}
}

// Divergence is the first tick at which two recordings differ.
type Divergence struct {
	Index int
	Want  TickRecord
	Got   TickRecord
}

func (d Divergence) String() string {
	return fmt.Sprintf("record %d (level %d tick %d): want %v, got %v",
		d.Index, d.Want.Level, d.Want.Tick, d.Want.Position, d.Got.Position)
}

// Compare walks want and got in step. It reports the first record whose
// level, tick or ball state differs by more than tolerance, or the first
// record missing from the shorter run.
func Compare(want, got []TickRecord, tolerance float32) (Divergence, bool) {
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		w, g := want[i], got[i]
		if w.Level != g.Level || w.Tick != g.Tick ||
			rl.Vector3Distance(w.Position, g.Position) > tolerance ||
			rl.Vector3Distance(w.Velocity, g.Velocity) > tolerance {
			return Divergence{Index: i, Want: w, Got: g}, true
		}
	}
	switch {
	case len(want) > n:
		return Divergence{Index: n, Want: want[n]}, true
	case len(got) > n:
		return Divergence{Index: n, Got: got[n]}, true
	}
	return Divergence{}, false
}
