package client

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Profiler captures a CPU profile and an execution trace when the frame
// rate drops, so slow frames can be inspected with go tool pprof.
type Profiler struct {
	logger *log.Logger

	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string

	// FPS watchdog
	threshold  float64
	warmup     time.Duration
	started    time.Time
	frames     int
	frameTimer float64
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, logger *log.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}
	return &Profiler{
		logger:          logger,
		profilesDir:     dir,
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		threshold:       45,
		warmup:          3 * time.Second,
		started:         time.Now(),
	}, nil
}

// Observe counts one frame of dtMillis. Every half second it checks the
// frame rate and starts a capture when it is below the threshold.
func (p *Profiler) Observe(dtMillis float64, reason func() string) {
	p.frames++
	p.frameTimer += dtMillis
	if p.frameTimer < 500 {
		return
	}
	fps := float64(p.frames) / (p.frameTimer / 1000)
	p.frames = 0
	p.frameTimer = 0

	// a running capture slows frames down itself
	if p.IsProfiling() {
		return
	}
	if fps >= p.threshold || time.Since(p.started) < p.warmup {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Warn("fps drop", "fps", int(fps), "num_gc", m.NumGC, "heap_kb", m.HeapAlloc/1024)

	if err := p.CaptureProfile(fmt.Sprintf("fps%.0f-%s", fps, reason())); err != nil {
		p.logger.Debug("profile not captured", "err", err)
	}
}

// CaptureProfile starts a CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", since.Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Error("cpu profile failed", "err", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Error("trace failed", "err", err)
			}
		}()
		wg.Wait()

		p.logger.Info("profile captured", "dir", p.profilesDir, "name", baseName,
			"hint", "go tool pprof -http=:8080 "+filepath.Join(p.profilesDir, baseName+".cpu.prof"))
	}()

	return nil
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()
	return nil
}
