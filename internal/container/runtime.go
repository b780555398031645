// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container implements container runtime detection and the lifecycle
// of the locally managed graph store container.
// Implements: prd008-store-container R1-R4; docs/ARCHITECTURE § Store.
package container

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Container states reported by Status.
const (
	StateRunning = "running"
	StateAbsent  = "absent"
)

// Spec describes the container to start: a detached long-running store with
// published ports, environment, and a data volume.
type Spec struct {
	Name    string
	Image   string
	Ports   []string          // "host:container"
	Env     map[string]string // environment variables
	Volumes []string          // "host-dir:container-dir"
}

// Runtime provides container operations: checking availability, verifying
// images, and managing the detached store container.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// Start launches the container described by spec detached. The image is
	// pulled by the runtime if missing locally.
	Start(spec Spec) error

	// Stop stops and removes the named container.
	Stop(name string) error

	// Status returns the container state ("running", "exited", ...), or
	// StateAbsent when no container with the name exists.
	Status(name string) (string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunOutput(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Start(spec Spec) error {
	args := []string{"run", "-d", "--name", spec.Name}
	for _, p := range spec.Ports {
		args = append(args, "-p", p)
	}
	// Env flags are emitted in sorted key order for a stable command line.
	keys := make([]string, 0, len(spec.Env))
	for k := range spec.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", k+"="+spec.Env[k])
	}
	for _, v := range spec.Volumes {
		args = append(args, "-v", v)
	}
	args = append(args, spec.Image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("starting %s container %s: %w", r.bin, spec.Name, err)
	}
	return nil
}

func (r *runtime) Stop(name string) error {
	if err := r.exec.RunSilent(r.bin, "stop", name); err != nil {
		return fmt.Errorf("stopping %s container %s: %w", r.bin, name, err)
	}
	if err := r.exec.RunSilent(r.bin, "rm", name); err != nil {
		return fmt.Errorf("removing %s container %s: %w", r.bin, name, err)
	}
	return nil
}

func (r *runtime) Status(name string) (string, error) {
	out, err := r.exec.RunOutput(r.bin, "inspect", "-f", "{{.State.Status}}", name)
	if err != nil {
		// Inspect fails when no container with the name exists.
		return StateAbsent, nil
	}
	return out, nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
