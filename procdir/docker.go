package procdir

import (
	"context"
	"log"
	"strings"
	"time"

	"procwatch/models"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// findContainers maps running container names onto their init process so a
// containerized workload can be monitored by container name. The query is
// already lowercased by the caller.
func (d *Directory) findContainers(query string) []models.ProcessEntry {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		log.Printf("Docker client error: %v", err)
		return nil
	}
	defer cli.Close()

	ctx := context.Background()
	containers, err := cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		log.Printf("Docker list error: %v", err)
		return nil
	}

	var entries []models.ProcessEntry
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		if name == "" || !strings.Contains(strings.ToLower(name), query) {
			continue
		}

		inspect, err := cli.ContainerInspect(ctx, c.ID)
		if err != nil || inspect.State == nil || inspect.State.Pid == 0 {
			continue
		}

		entries = append(entries, models.ProcessEntry{
			Pid:       int32(inspect.State.Pid),
			Name:      name,
			StartTime: time.Unix(c.Created, 0),
		})
	}

	return entries
}
