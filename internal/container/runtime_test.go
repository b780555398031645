// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"errors"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool   // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool   // "bin arg1 arg2" -> whether RunSilent succeeds
	outputs       map[string]string // "bin arg1 arg2" -> RunOutput result
	silentCalls   []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	m.silentCalls = append(m.silentCalls, key)
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunOutput(name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	if out, ok := m.outputs[key]; ok {
		return out, nil
	}
	return "", errors.New("command failed: " + key)
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "neither available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		image   string
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name:  "docker image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "neo4j:5",
			cmds:  map[string]bool{"docker image inspect neo4j:5": true},
		},
		{
			name:    "docker image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image:   "neo4j:5",
			cmds:    map[string]bool{},
			wantErr: true,
		},
		{
			name:  "podman image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image: "neo4j:5",
			cmds:  map[string]bool{"podman image exists neo4j:5": true},
		},
		{
			name:    "podman image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image:   "neo4j:5",
			cmds:    map[string]bool{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runnableCmds: tt.cmds}
			rt := tt.mkRT(exec)
			err := rt.ImageExists(tt.image)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.image) {
					t.Errorf("error should mention image name, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStartBuildsRunCommand(t *testing.T) {
	want := "docker run -d --name citegraph-neo4j " +
		"-p 7474:7474 -p 7687:7687 " +
		"-e NEO4J_AUTH=neo4j/secret " +
		"-v .neo4j/data:/data " +
		"neo4j:5"
	exec := &mockExecutor{runnableCmds: map[string]bool{want: true}}
	rt := newDockerRuntime(exec)

	err := rt.Start(Spec{
		Name:    "citegraph-neo4j",
		Image:   "neo4j:5",
		Ports:   []string{"7474:7474", "7687:7687"},
		Env:     map[string]string{"NEO4J_AUTH": "neo4j/secret"},
		Volumes: []string{".neo4j/data:/data"},
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(exec.silentCalls) != 1 || exec.silentCalls[0] != want {
		t.Fatalf("command = %v, want %q", exec.silentCalls, want)
	}
}

func TestStartFailureWrapsContainerName(t *testing.T) {
	exec := &mockExecutor{runnableCmds: map[string]bool{}}
	rt := newPodmanRuntime(exec)
	err := rt.Start(Spec{Name: "citegraph-neo4j", Image: "neo4j:5"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "citegraph-neo4j") {
		t.Errorf("error should mention container name, got: %v", err)
	}
}

func TestStopStopsThenRemoves(t *testing.T) {
	exec := &mockExecutor{runnableCmds: map[string]bool{
		"docker stop citegraph-neo4j": true,
		"docker rm citegraph-neo4j":   true,
	}}
	rt := newDockerRuntime(exec)
	if err := rt.Stop("citegraph-neo4j"); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	want := []string{"docker stop citegraph-neo4j", "docker rm citegraph-neo4j"}
	if len(exec.silentCalls) != 2 || exec.silentCalls[0] != want[0] || exec.silentCalls[1] != want[1] {
		t.Fatalf("calls = %v, want %v", exec.silentCalls, want)
	}
}

func TestStopFailureSurfaces(t *testing.T) {
	exec := &mockExecutor{runnableCmds: map[string]bool{}}
	rt := newDockerRuntime(exec)
	if err := rt.Stop("citegraph-neo4j"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		outputs map[string]string
		want    string
	}{
		{
			name:    "running container",
			outputs: map[string]string{"docker inspect -f {{.State.Status}} citegraph-neo4j": "running"},
			want:    StateRunning,
		},
		{
			name:    "exited container",
			outputs: map[string]string{"docker inspect -f {{.State.Status}} citegraph-neo4j": "exited"},
			want:    "exited",
		},
		{
			name:    "missing container",
			outputs: map[string]string{},
			want:    StateAbsent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newDockerRuntime(&mockExecutor{outputs: tt.outputs})
			got, err := rt.Status("citegraph-neo4j")
			if err != nil {
				t.Fatalf("Status: %v", err)
			}
			if got != tt.want {
				t.Errorf("Status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuntimeName(t *testing.T) {
	exec := &mockExecutor{}
	docker := newDockerRuntime(exec)
	if docker.Name() != "docker" {
		t.Errorf("docker runtime name = %q, want %q", docker.Name(), "docker")
	}
	podman := newPodmanRuntime(exec)
	if podman.Name() != "podman" {
		t.Errorf("podman runtime name = %q, want %q", podman.Name(), "podman")
	}
}
