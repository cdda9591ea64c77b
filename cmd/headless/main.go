// Headless plays a course without a window, with scripted input and
// synthetic frame timestamps. It reports step timing and can record or
// compare a replay to check that the simulation is deterministic.
package main

import (
	"flag"
	"fmt"
	"log"
	"marble/internal/config"
	"marble/internal/level"
	"marble/internal/replay"
	"marble/internal/sim"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML options file")
	courseName := flag.String("course", "tutorial", "Course to play")
	fps := flag.Float64("fps", 60, "Synthetic frame rate")
	jitter := flag.Float64("jitter", 0, "Random frame time jitter as a fraction of the frame time")
	seconds := flag.Float64("seconds", 120, "Stop after this much wall time")
	replayDir := flag.String("replay", "", "Directory to record a replay bundle into")
	compareDir := flag.String("compare", "", "Replay bundle to compare this run against")
	flag.Parse()

	if *fps <= 0 {
		fmt.Fprintln(os.Stderr, "fps must be positive")
		os.Exit(1)
	}

	opts, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("headless: %v", err)
	}
	course, err := level.FindCourse(*courseName)
	if err != nil {
		log.Fatalf("headless: %v", err)
	}

	root := *replayDir
	cleanup := func() {}
	if root == "" && *compareDir != "" {
		root, err = os.MkdirTemp("", "marble-replay-")
		if err != nil {
			log.Fatalf("headless: %v", err)
		}
		cleanup = func() { os.RemoveAll(root) }
	}
	defer cleanup()

	input := &level.ScriptedInput{
		SkipIntro: true,
		Segments:  []level.Segment{{Until: *seconds, Movement: rl.Vector2{Y: 1}}},
	}
	runner := &sim.Runner{}
	player := level.NewCoursePlayer(course, opts, input, runner)

	var writer *replay.Writer
	if root != "" {
		writer, _, err = replay.NewWriter(root, course.Name, opts.TicksPerSecond, nil)
		if err != nil {
			log.Fatalf("headless: %v", err)
		}
	}

	var steps int
	var stepTime time.Duration
	var stepStart time.Time
	player.OnLevel.AddListener(func(l *level.Level) {
		if writer != nil {
			writer.Attach(l, player.LevelIndex())
		}
		l.Loop.PreStep.AddListener(func(sim.Tick) { stepStart = time.Now() })
		l.Loop.PostStep.AddListener(func(sim.Tick) {
			stepTime += time.Since(stepStart)
			steps++
		})
	})

	if err := player.Start(); err != nil {
		log.Fatalf("headless: %v", err)
	}

	// Consistent results
	rng := rand.New(rand.NewSource(42))
	frame := 1 / *fps
	ts := 0.0
	frames := 0
	for !player.Finished() && ts < *seconds {
		input.Update(ts)
		if _, err := player.Frame(ts); err != nil {
			log.Fatalf("headless: %v", err)
		}
		frames++
		ts += frame * (1 + *jitter*(rng.Float64()*2-1))
	}

	s := player.Score
	fmt.Printf("course %s: %d frames, %d ticks, %.1fs simulated\n", course.Name, frames, steps, ts)
	if player.Finished() {
		fmt.Printf("finished in %s with %d deaths, score %d\n", s.FormatPlayTime(), s.Deaths, s.Score())
	} else {
		fmt.Printf("not finished: level %d, %d deaths, coins %d/%d\n",
			player.LevelIndex(), s.Deaths, s.CoinsCollected, s.TotalCoins)
	}
	if steps > 0 {
		fmt.Printf("step: %v avg\n", (stepTime / time.Duration(steps)).Round(time.Microsecond))
	}

	if writer == nil {
		return
	}
	if err := writer.Close(); err != nil {
		log.Fatalf("headless: %v", err)
	}
	ticks, events := writer.Counts()
	fmt.Printf("replay %s: %d ticks, %d events\n", writer.Directory(), ticks, events)

	if *compareDir == "" {
		return
	}
	want, err := replay.ReadTicks(*compareDir)
	if err != nil {
		log.Fatalf("headless: %v", err)
	}
	got, err := replay.ReadTicks(writer.Directory())
	if err != nil {
		log.Fatalf("headless: %v", err)
	}
	if d, diverged := replay.Compare(want, got, 1e-5); diverged {
		fmt.Printf("diverged at %s\n", d)
		cleanup()
		os.Exit(2)
	}
	fmt.Println("replay matches")
}
