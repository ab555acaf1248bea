// internal/sysinfo/sysinfo.go
package sysinfo

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"
	"time"
)

const mib = 1024 * 1024

// System describes the host the process runs on.
type System struct {
	Hostname     string
	Platform     string
	Architecture string
	CPUs         int
	TotalMemMB   int
	FreeMemMB    int

	Errors []string
}

// Process describes the running Go process.
type Process struct {
	RuntimeVersion string
	PID            int
	Uptime         time.Duration
	HeapUsedBytes  uint64
	HeapTotalBytes uint64
}

// HeapUsedMB and HeapTotalMB round to the nearest MiB.
func (p Process) HeapUsedMB() int  { return roundMB(p.HeapUsedBytes) }
func (p Process) HeapTotalMB() int { return roundMB(p.HeapTotalBytes) }

// Collector reads OS and runtime state on demand. It holds no mutable
// state, so one instance is shared by all requests.
type Collector struct {
	startedAt   time.Time
	meminfoPath string
	hostname    func() (string, error)
	memStats    func(*runtime.MemStats)
}

// NewCollector returns a Collector whose process uptime starts now.
func NewCollector() *Collector {
	return &Collector{
		startedAt:   time.Now(),
		meminfoPath: "/proc/meminfo",
		hostname:    os.Hostname,
		memStats:    runtime.ReadMemStats,
	}
}

// Hostname falls back to "unknown" when the kernel refuses to tell.
func (c *Collector) Hostname() string {
	h, err := c.hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
}

// System reads host facts; meminfo failures land in System.Errors.
func (c *Collector) System() System {
	s := System{
		Hostname:     c.Hostname(),
		Platform:     runtime.GOOS,
		Architecture: runtime.GOARCH,
		CPUs:         runtime.NumCPU(),
	}

	total, free, err := readMem(c.meminfoPath)
	if err != nil {
		s.Errors = append(s.Errors, "meminfo: "+err.Error())
	}
	s.TotalMemMB = total
	s.FreeMemMB = free
	return s
}

// Process samples the Go runtime heap and process identity.
func (c *Collector) Process() Process {
	var ms runtime.MemStats
	c.memStats(&ms)

	return Process{
		RuntimeVersion: runtime.Version(),
		PID:            os.Getpid(),
		Uptime:         time.Since(c.startedAt),
		HeapUsedBytes:  ms.HeapAlloc,
		HeapTotalBytes: ms.HeapSys,
	}
}

// HeapUsed is the cheap sample used by the health check.
func (c *Collector) HeapUsed() uint64 {
	var ms runtime.MemStats
	c.memStats(&ms)
	return ms.HeapAlloc
}

// readMem returns MemTotal and MemAvailable in MiB.
func readMem(path string) (totalMB, freeMB int, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	var memTotalKB, memAvailKB, memFreeKB uint64
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			fmt.Sscanf(line, "MemTotal: %d kB", &memTotalKB)
		case strings.HasPrefix(line, "MemAvailable:"):
			fmt.Sscanf(line, "MemAvailable: %d kB", &memAvailKB)
		case strings.HasPrefix(line, "MemFree:"):
			fmt.Sscanf(line, "MemFree: %d kB", &memFreeKB)
		}
	}
	if memTotalKB == 0 {
		return 0, 0, fmt.Errorf("MemTotal not found in %s", path)
	}
	// Kernels before 3.14 have no MemAvailable.
	if memAvailKB == 0 {
		memAvailKB = memFreeKB
	}
	return roundMB(memTotalKB * 1024), roundMB(memAvailKB * 1024), nil
}

func roundMB(n uint64) int {
	return int(math.Round(float64(n) / mib))
}
