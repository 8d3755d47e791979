package mcp

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/store"
)

func TestRunnerRequiresRepository(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatal("expected an error without a repository")
	}
}

func TestRunnerRejectsUnknownTransport(t *testing.T) {
	r := Runner{
		Repository: journal.NewRepository(store.NewMemory()),
		Transport:  Transport("carrier-pigeon"),
	}
	err := r.Do(context.Background())
	if err == nil || !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Fatalf("expected unknown transport error, got %v", err)
	}
}

func TestRunnerRejectsHalfTLS(t *testing.T) {
	r := Runner{
		Repository:     journal.NewRepository(store.NewMemory()),
		Transport:      TransportHTTP,
		HTTPServerCert: "cert.pem",
	}
	if err := r.Do(context.Background()); err == nil {
		t.Fatal("expected an error when only the cert is set")
	}
}

func TestRunnerHTTPStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listening := make(chan net.Addr, 1)
	r := Runner{
		Repository:       journal.NewRepository(store.NewMemory()),
		Transport:        TransportHTTP,
		HTTPListenAddr:   "127.0.0.1:0",
		HTTPEndpointPath: "mcp",
		OnHTTPListening: func(a net.Addr) {
			listening <- a
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- r.Do(ctx)
	}()

	select {
	case a := <-listening:
		if a.(*net.TCPAddr).Port == 0 {
			t.Fatalf("expected a bound port, got %v", a)
		}
	case err := <-done:
		t.Fatalf("runner exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for listener")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}
