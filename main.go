package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"procwatch/config"
	"procwatch/export"
	"procwatch/monitor"
	"procwatch/procdir"

	"github.com/shirou/gopsutil/v3/host"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg := config.Load()

	if len(cfg.Targets) == 0 {
		log.Fatal("WATCH_TARGETS required (comma-separated process names or pids)")
	}

	log.Printf("procwatch %s (%s) built on %s", version, commit, date)
	logHostInfo()
	log.Printf("Interval: %v", cfg.PollInterval)

	dir := procdir.New(cfg.DockerLookup)
	session := monitor.NewSession(dir)
	session.SetInterval(cfg.PollInterval)

	for _, target := range cfg.Targets {
		if added := addTarget(session, target); added == 0 {
			log.Printf("No live process matched target %q", target)
		}
	}
	if len(session.Processes()) == 0 {
		log.Fatal("No watch targets resolved to live processes")
	}

	session.ToggleMonitoring()
	if !session.Active() {
		log.Fatal("Monitoring could not be started")
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	log.Println("Shutting down...")

	session.ToggleMonitoring()
	exportAll(session, cfg.ExportDir)

	if msg := session.LastError(); msg != "" {
		log.Printf("Last session error: %s", msg)
	}
}

// logHostInfo prints a one-line host banner
func logHostInfo() {
	if info, err := host.Info(); err == nil {
		log.Printf("Host: %s %s %s (%s, kernel %s)",
			info.OS, info.Platform, info.PlatformVersion, info.KernelArch, info.KernelVersion)
	}
}

// addTarget resolves one WATCH_TARGETS token through the regular search/add
// path and monitors every match.
func addTarget(session *monitor.MonitoringSession, target string) int {
	added := 0
	for i := 0; ; i++ {
		session.OpenSearch()
		session.Search(target)
		results := session.SearchResults()
		if i >= len(results) {
			session.CloseSearch()
			return added
		}
		session.Select(i)
		p := session.AddSelected()
		if p == nil {
			// already monitored or gone between search and add
			session.CloseSearch()
			continue
		}
		log.Printf("Watching %s (pid %d)", p.Name(), p.Pid())
		added++
	}
}

// exportAll writes every monitored process with recorded samples to dir
func exportAll(session *monitor.MonitoringSession, dir string) {
	for _, p := range session.Processes() {
		if !session.CanExport(p) {
			continue
		}
		dest := filepath.Join(dir, export.FileName(p.Name(), p.Pid()))
		if err := session.Export(p, dest); err != nil {
			log.Printf("Export failed for pid %d: %v", p.Pid(), err)
			continue
		}
		log.Printf("Exported %d samples for %s to %s", p.SampleCount(), p.Name(), dest)
	}
}
