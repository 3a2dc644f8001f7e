package procdir

import (
	"log"
	"os"
	"sync"

	"procwatch/models"
)

var (
	caps     models.Capabilities
	capsOnce sync.Once
)

// DetectCapabilities probes the host environment once and logs what the
// directory can reach.
func DetectCapabilities() models.Capabilities {
	capsOnce.Do(func() {
		caps = models.Capabilities{
			HasProcFS:       fileExists("/proc/self/status"),
			HasDockerSocket: fileExists("/var/run/docker.sock"),
		}

		log.Println("╭─ Directory Capabilities ──────────────────────────────────╮")
		logCap("procfs", caps.HasProcFS, "(per-process fd/thread counts)")
		logCap("Docker", caps.HasDockerSocket, "(container name lookup)")
		log.Println("╰───────────────────────────────────────────────────────────╯")
	})
	return caps
}

func logCap(name string, available bool, desc string) {
	icon := "✗"
	status := "unavailable"
	if available {
		icon = "✓"
		status = "enabled"
	}
	log.Printf("│ %s %-10s │ %-11s │ %-28s │", icon, name, status, desc)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
