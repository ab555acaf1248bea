package httpserver

import (
	"fmt"
	"net/http"
	"time"
)

const (
	welcomeMessage = "Hello from AKS with ArgoCD! 🚀"

	// heapWarnBytes is the heap size above which /health reports memory "warning".
	heapWarnBytes = 100 * 1024 * 1024
)

type rootResponse struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Hostname    string `json:"hostname"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type healthChecks struct {
	Server string `json:"server"`
	Memory string `json:"memory"`
}

type healthResponse struct {
	Status    string       `json:"status"`
	Uptime    int64        `json:"uptime"`
	Timestamp string       `json:"timestamp"`
	Checks    healthChecks `json:"checks"`
}

type versionResponse struct {
	Version        string `json:"version"`
	Environment    string `json:"environment"`
	RuntimeVersion string `json:"runtimeVersion"`
	Platform       string `json:"platform"`
	Hostname       string `json:"hostname"`
}

type infoResponse struct {
	Application struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Environment string `json:"environment"`
	} `json:"application"`

	System struct {
		Hostname     string `json:"hostname"`
		Platform     string `json:"platform"`
		Architecture string `json:"architecture"`
		CPUs         int    `json:"cpus"`
		TotalMemory  string `json:"totalMemory"`
		FreeMemory   string `json:"freeMemory"`
	} `json:"system"`

	Process struct {
		RuntimeVersion string `json:"runtimeVersion"`
		PID            int    `json:"pid"`
		Uptime         string `json:"uptime"`
		MemoryUsage    struct {
			HeapUsed  string `json:"heapUsed"`
			HeapTotal string `json:"heapTotal"`
		} `json:"memoryUsage"`
	} `json:"process"`
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(isoMillis)
}

// uptimeSeconds is floor((now - start) / 1s), never negative.
func (s *Server) uptimeSeconds() int64 {
	d := s.now().Sub(s.cfg.StartTime)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

func memoryCheck(heapUsed uint64) string {
	if heapUsed < heapWarnBytes {
		return "ok"
	}
	return "warning"
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, rootResponse{
		Message:     welcomeMessage,
		Timestamp:   s.timestamp(),
		Hostname:    s.sys.Hostname(),
		Environment: s.cfg.Environment,
		Version:     s.cfg.Version,
	})
}

// handleHealth never fails the probe; the memory check is advisory.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Uptime:    s.uptimeSeconds(),
		Timestamp: s.timestamp(),
		Checks: healthChecks{
			Server: "ok",
			Memory: memoryCheck(s.sys.HeapUsed()),
		},
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) error {
	p := s.sys.Process()
	return writeJSON(w, http.StatusOK, versionResponse{
		Version:        s.cfg.Version,
		Environment:    s.cfg.Environment,
		RuntimeVersion: p.RuntimeVersion,
		Platform:       s.sys.System().Platform,
		Hostname:       s.sys.Hostname(),
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) error {
	sys := s.sys.System()
	for _, e := range sys.Errors {
		s.log.Warn("system info incomplete", "error", e)
	}
	p := s.sys.Process()

	var resp infoResponse
	resp.Application.Name = s.cfg.AppName
	resp.Application.Version = s.cfg.Version
	resp.Application.Environment = s.cfg.Environment

	resp.System.Hostname = sys.Hostname
	resp.System.Platform = sys.Platform
	resp.System.Architecture = sys.Architecture
	resp.System.CPUs = sys.CPUs
	resp.System.TotalMemory = megabytes(sys.TotalMemMB)
	resp.System.FreeMemory = megabytes(sys.FreeMemMB)

	resp.Process.RuntimeVersion = p.RuntimeVersion
	resp.Process.PID = p.PID
	resp.Process.Uptime = fmt.Sprintf("%d seconds", int64(p.Uptime/time.Second))
	resp.Process.MemoryUsage.HeapUsed = megabytes(p.HeapUsedMB())
	resp.Process.MemoryUsage.HeapTotal = megabytes(p.HeapTotalMB())

	return writeJSON(w, http.StatusOK, resp)
}

func megabytes(n int) string {
	return fmt.Sprintf("%d MB", n)
}
