// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package container

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/thediveo/lxkns/log"
)

// DefaultHost is the Docker daemon API endpoint used unless told otherwise.
const DefaultHost = "unix:///var/run/docker.sock"

// Inspector inspects containers, as does the Docker client.
type Inspector interface {
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
}

var _ Inspector = (*client.Client)(nil)

// NewClient returns a Docker client for the specified daemon API endpoint,
// negotiating the API version.
func NewClient(host string) (*client.Client, error) {
	if host == "" {
		host = DefaultHost
	}
	cln, err := client.NewClientWithOpts(
		// A fresh transport, as the default one keeps dialing the unix socket
		// even for tcp hosts.
		client.WithHTTPClient(&http.Client{Transport: &http.Transport{}}),
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the Docker daemon: %w", err)
	}
	return cln, nil
}

// NetworkNamespace returns the filesystem path referencing the network
// namespace of the container identified by its name or ID, so that URLs can
// be probed from the perspective of this container. The container must be
// running.
func NetworkNamespace(ctx context.Context, moby Inspector, nameOrID string) (string, error) {
	details, err := moby.ContainerInspect(ctx, nameOrID)
	if err != nil {
		return "", fmt.Errorf("cannot inspect container '%s': %w", nameOrID, err)
	}
	if details.ContainerJSONBase == nil || details.State == nil || details.State.Pid == 0 {
		return "", fmt.Errorf("container '%s' is not running", nameOrID)
	}
	netnsref := fmt.Sprintf("/proc/%d/ns/net", details.State.Pid)
	log.Debugf("container '%s' with PID %d attached to %s",
		strings.TrimPrefix(details.Name, "/"), // argh, Docker's "/name" legacy!
		details.State.Pid, netnsref)
	return netnsref, nil
}
