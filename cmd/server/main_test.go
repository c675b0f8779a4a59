package main

import "testing"

func TestServerAddr(t *testing.T) {
	if got := serverAddr("8080"); got != ":8080" {
		t.Fatalf("expected :8080, got %s", got)
	}

	if got := serverAddr("9090"); got != ":9090" {
		t.Fatalf("expected :9090, got %s", got)
	}
}
