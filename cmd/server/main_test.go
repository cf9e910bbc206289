package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestServeStopsOnCancel(t *testing.T) {
	logger = zap.NewNop()
	httpAddr = "127.0.0.1:0"
	grpcAddr = "127.0.0.1:0"
	configDir = t.TempDir()
	if err := os.MkdirAll(filepath.Join(configDir, "curves"), 0o755); err != nil {
		t.Fatal(err)
	}
	defer func() { httpAddr, grpcAddr, configDir = ":8080", ":9090", "" }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServeBadGRPCAddr(t *testing.T) {
	logger = zap.NewNop()
	httpAddr = ""
	grpcAddr = "256.0.0.1:bad"
	defer func() { httpAddr, grpcAddr = ":8080", ":9090" }()

	if err := serve(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
