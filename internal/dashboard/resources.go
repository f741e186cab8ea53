package dashboard

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"pitchflow/logger"
)

// resourceSample is one reading of host and process utilisation. The host
// percentages tell an operator whether the box is healthy; the process
// fields catch leaks in the refresh path (reports pinned past their TTL,
// websocket writers that never exit).
type resourceSample struct {
	Timestamp  time.Time `json:"timestamp"`
	CPUPercent float64   `json:"cpu_percent"`
	MemoryPct  float64   `json:"memory_percent"`
	DiskPct    float64   `json:"disk_percent"`
	ProcessRSS uint64    `json:"process_rss"`
	Goroutines int       `json:"goroutines"`
}

// sampleHostFn reports host cpu, memory and disk usage as percentages. The
// cpu figure is utilisation since the previous call, so the first reading
// of a run is 0.
var sampleHostFn = func(ctx context.Context, diskPath string) (cpuPct, memPct, diskPct float64, err error) {
	cpuPcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, 0, 0, err
	}
	if len(cpuPcts) > 0 {
		cpuPct = cpuPcts[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	du, err := disk.UsageWithContext(ctx, diskPath)
	if err != nil {
		return 0, 0, 0, err
	}

	return cpuPct, vm.UsedPercent, du.UsedPercent, nil
}

var sampleProcessRSS = func(proc *process.Process) uint64 {
	if proc == nil {
		return 0
	}
	info, err := proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return info.RSS
}

// resourceMonitor keeps a bounded ring of recent resource samples for the
// /api/resources panel. One goroutine collects on a fixed cadence between
// start and stop.
type resourceMonitor struct {
	mu       sync.Mutex
	ring     []resourceSample
	limit    int
	interval time.Duration
	diskPath string
	proc     *process.Process
	stopFn   context.CancelFunc

	wg  sync.WaitGroup
	log *logger.Log
}

func newResourceMonitor(limit int, interval time.Duration, diskPath string, log *logger.Log) *resourceMonitor {
	if limit <= 0 {
		limit = 200
	}
	if interval <= 0 {
		interval = time.Second
	}
	if diskPath == "" {
		diskPath = "/"
	}
	// Best effort; a nil handle just zeroes the process_rss field.
	proc, _ := process.NewProcess(int32(os.Getpid()))
	return &resourceMonitor{
		limit:    limit,
		interval: interval,
		diskPath: diskPath,
		proc:     proc,
		log:      log,
	}
}

func (m *resourceMonitor) start(ctx context.Context) {
	m.mu.Lock()
	if m.stopFn != nil {
		m.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.stopFn = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(runCtx)
	}()
}

func (m *resourceMonitor) stop() {
	m.mu.Lock()
	cancel := m.stopFn
	m.stopFn = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		m.wg.Wait()
	}
}

func (m *resourceMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.collect(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// collect takes one sample. A failed host read is logged and skipped; the
// ring only ever holds complete samples.
func (m *resourceMonitor) collect(ctx context.Context) {
	cpuPct, memPct, diskPct, err := sampleHostFn(ctx, m.diskPath)
	if err != nil {
		m.log.WithComponent("resource_monitor").WithError(err).Debug("host sample failed")
		return
	}

	sample := resourceSample{
		Timestamp:  time.Now(),
		CPUPercent: cpuPct,
		MemoryPct:  memPct,
		DiskPct:    diskPct,
		ProcessRSS: sampleProcessRSS(m.proc),
		Goroutines: runtime.NumGoroutine(),
	}

	m.mu.Lock()
	m.ring = append(m.ring, sample)
	if len(m.ring) > m.limit {
		m.ring = append([]resourceSample(nil), m.ring[len(m.ring)-m.limit:]...)
	}
	m.mu.Unlock()
}

func (m *resourceMonitor) snapshot() []resourceSample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]resourceSample, len(m.ring))
	copy(out, m.ring)
	return out
}
