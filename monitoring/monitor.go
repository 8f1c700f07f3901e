// Package monitoring turns a running set of MemoryControllers into an HTTP
// introspection server: live counters, a miss-rate history, host resource
// usage and a pprof CPU profile, grounded on the teacher's
// monitoring/monitor.go (gorilla/mux routing, shirou/gopsutil resource
// endpoint, google/pprof profile endpoint) but re-pointed from a
// sim.Engine/sim.Component tree at controller.MemoryController.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/dramcachectl/controller"
)

// Monitor serves live introspection for a set of registered controllers.
type Monitor struct {
	portNumber int

	controllersLock sync.Mutex
	controllers     []*controller.MemoryController

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a Monitor with no controllers registered yet.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the monitor's listening port. A port below 1000 is
// rejected and a random port is used instead, matching the teacher's guard
// against binding privileged ports by accident.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"monitoring: port %d is not allowed, using a random port instead\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterController registers a controller to be monitored.
func (m *Monitor) RegisterController(c *controller.MemoryController) {
	m.controllersLock.Lock()
	defer m.controllersLock.Unlock()

	m.controllers = append(m.controllers, c)
}

// CreateProgressBar creates a new progress bar (e.g. for a trace-replay
// run's "lines processed / total lines").
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{ID: newProgressBarID(), Name: name, Total: total, StartTime: time.Now()}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()
	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the list shown on /api/progress.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}
	m.progressBars = newBars
}

// StartServer starts the monitor's HTTP server in the background and
// returns the address it bound to.
func (m *Monitor) StartServer() (string, error) {
	r := mux.NewRouter()
	r.HandleFunc("/api/controllers", m.listControllers)
	r.HandleFunc("/api/controller/{name}", m.controllerDetails)
	r.HandleFunc("/api/controller/{name}/missrate", m.missRateHistory)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", fmt.Errorf("monitoring: %w", err)
	}

	addr := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "monitoring: serving %s\n", addr)

	go func() {
		_ = http.Serve(listener, r)
	}()

	return addr, nil
}

func (m *Monitor) listControllers(w http.ResponseWriter, _ *http.Request) {
	m.controllersLock.Lock()
	defer m.controllersLock.Unlock()

	names := make([]string, len(m.controllers))
	for i, c := range m.controllers {
		names[i] = c.Config().Name
	}

	writeJSON(w, names)
}

func (m *Monitor) findControllerOr404(w http.ResponseWriter, name string) *controller.MemoryController {
	m.controllersLock.Lock()
	defer m.controllersLock.Unlock()

	for _, c := range m.controllers {
		if c.Config().Name == name {
			return c
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("controller not found"))

	return nil
}

func (m *Monitor) controllerDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	c := m.findControllerOr404(w, name)
	if c == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&c.Stats)
	serializer.SetMaxDepth(1)
	if err := serializer.Serialize(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (m *Monitor) missRateHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	c := m.findControllerOr404(w, name)
	if c == nil {
		return
	}

	writeJSON(w, c.MissRateHistory())
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceRsp{CPUPercent: cpuPercent, MemorySize: memInfo.RSS})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
