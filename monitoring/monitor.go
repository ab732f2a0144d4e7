// Package monitoring turns a running simulation into an HTTP server that
// exposes the state of the memories being simulated.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/bram/mem/bram"
	"github.com/sarchlab/bram/sim/hooking"
	"github.com/sarchlab/bram/sim/id"
)

// Memory is a component whose contents can be monitored.
type Memory interface {
	hooking.Hookable
	Name() string
	Depth() int
	Width() int
	CurrentCycle() uint64
	Snapshot() []bram.Word
}

// Monitor can turn a simulation into a server and allows external monitoring
// of the simulation.
//
// A registered memory only changes between its before-cycle and after-cycle
// hooks. The monitor holds its lock across that window, so a request always
// observes the state between two cycles.
type Monitor struct {
	lock       sync.Mutex
	memories   []Memory
	portNumber int
	idGen      id.IDGenerator

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{idGen: id.NewIDGenerator()}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterMemory registers a memory to be monitored.
func (m *Monitor) RegisterMemory(mem Memory) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.memories = append(m.memories, mem)
	mem.AcceptHook(&cycleFence{monitor: m})
}

// cycleFence keeps HTTP requests out while a cycle is being evaluated.
type cycleFence struct {
	monitor *Monitor
}

func (f *cycleFence) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case bram.HookPosBeforeCycle:
		f.monitor.lock.Lock()
	case bram.HookPosAfterCycle:
		f.monitor.lock.Unlock()
	}
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGen.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
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

func (m *Monitor) newRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{name}/{field}", m.listFieldValue)
	r.HandleFunc("/api/memory/{name}", m.listMemoryContents)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	router := m.newRouter()

	go func() {
		err := http.Serve(listener, router)
		dieOnErr(err)
	}()

	return url
}

// OpenBrowser opens the monitor page in the default browser.
func (m *Monitor) OpenBrowser(url string) error {
	return browser.OpenURL(url + "/api/list_components")
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	names := make([]string, 0, len(m.memories))
	for _, mem := range m.memories {
		names = append(names, mem.Name())
	}
	m.lock.Unlock()

	m.writeJSON(w, names)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	mem := m.findMemoryOr404(w, mux.Vars(r)["name"])
	if mem == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(mem)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	vars := mux.Vars(r)

	mem := m.findMemoryOr404(w, vars["name"])
	if mem == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(mem)
	serializer.SetMaxDepth(1)

	err := serializer.SetEntryPoint(strings.Split(vars["field"], "."))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type cellRsp struct {
	Addr  int    `json:"addr"`
	Value string `json:"value"`
}

type memoryRsp struct {
	Name  string    `json:"name"`
	Depth int       `json:"depth"`
	Width int       `json:"width"`
	Cycle uint64    `json:"cycle"`
	Total int       `json:"total"`
	Cells []cellRsp `json:"cells"`
}

func (m *Monitor) listMemoryContents(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := m.cellsParseParams(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	m.lock.Lock()

	mem := m.findMemoryOr404(w, mux.Vars(r)["name"])
	if mem == nil {
		m.lock.Unlock()
		return
	}

	rsp := memoryRsp{
		Name:  mem.Name(),
		Depth: mem.Depth(),
		Width: mem.Width(),
		Cycle: mem.CurrentCycle(),
		Total: mem.Depth(),
	}
	cells := mem.Snapshot()

	m.lock.Unlock()

	end := len(cells)
	if limit > 0 {
		end = min(offset+limit, len(cells))
	}

	rsp.Cells = []cellRsp{}
	for addr := min(offset, len(cells)); addr < end; addr++ {
		rsp.Cells = append(rsp.Cells, cellRsp{
			Addr:  addr,
			Value: cells[addr].String(),
		})
	}

	m.writeJSON(w, rsp)
}

func (*Monitor) cellsParseParams(r *http.Request) (limit, offset int, err error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "0"
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		return 0, 0, fmt.Errorf("invalid limit %q", limitStr)
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		offsetStr = "0"
	}

	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset %q", offsetStr)
	}

	return limit, offset, nil
}

func (m *Monitor) findMemoryOr404(w http.ResponseWriter, name string) Memory {
	for _, mem := range m.memories {
		if mem.Name() == name {
			return mem
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Component not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]*ProgressBar, len(m.progressBars))
	copy(bars, m.progressBars)
	m.progressBarsLock.Unlock()

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].StartTime.Before(bars[j].StartTime)
	})

	snapshots := make([]ProgressBarSnapshot, 0, len(bars))
	for _, b := range bars {
		snapshots = append(snapshots, b.Snapshot())
	}

	m.writeJSON(w, snapshots)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
