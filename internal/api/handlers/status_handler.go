package handlers

import (
	"net/http"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/maelvns/featherpost-be/internal/store"
)

// StatusHandler reports host and dataset health.
type StatusHandler struct {
	store store.Store
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(st store.Store) *StatusHandler {
	return &StatusHandler{store: st}
}

// StatusReport is the response shape of GET /status.
type StatusReport struct {
	Status        string  `json:"status"`
	UptimeSeconds uint64  `json:"uptimeSeconds"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	Goroutines    int     `json:"goroutines"`
	Users         int64   `json:"users"`
	Messages      int64   `json:"messages"`
}

// Report handles GET /status. Host metrics are best-effort; a failing probe
// leaves its field at zero rather than failing the request.
func (h *StatusHandler) Report(r *http.Request) (any, error) {
	report := StatusReport{Status: "ok", Goroutines: runtime.NumGoroutine()}

	if uptime, err := host.Uptime(); err == nil {
		report.UptimeSeconds = uptime
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		report.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		report.MemoryPercent = vm.UsedPercent
	}

	users, err := h.store.CountUsers()
	if err != nil {
		return nil, err
	}
	messages, err := h.store.CountMessages()
	if err != nil {
		return nil, err
	}
	report.Users = users
	report.Messages = messages

	return report, nil
}
