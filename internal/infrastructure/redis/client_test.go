package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientConnects(t *testing.T) {
	s := miniredis.RunT(t)

	for _, target := range []string{"redis://" + s.Addr() + "/2", s.Addr()} {
		client, err := NewClient(context.Background(), target)
		if err != nil {
			t.Fatalf("NewClient(%q) failed: %v", target, err)
		}
		if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
			t.Fatalf("set via %q failed: %v", target, err)
		}
		client.Close()
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		input   string
		addr    string
		db      int
		wantErr bool
	}{
		{input: "redis://localhost:6380/3", addr: "localhost:6380", db: 3},
		{input: "cache:6379", addr: "cache:6379"},
		{input: "://bad-url", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		opts, err := parseOptions(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseOptions(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseOptions(%q): %v", tt.input, err)
		}
		if opts.Addr != tt.addr || opts.DB != tt.db {
			t.Fatalf("parseOptions(%q) = addr %s db %d", tt.input, opts.Addr, opts.DB)
		}
		if opts.DialTimeout <= 0 || opts.DialTimeout > 3*time.Second {
			t.Fatalf("parseOptions(%q): dial timeout %v not capped", tt.input, opts.DialTimeout)
		}
	}
}

func TestNewClientServerDown(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := NewClient(context.Background(), addr); err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}
