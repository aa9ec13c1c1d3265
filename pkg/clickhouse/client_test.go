package clickhouse

import (
	"strings"
	"testing"
	"time"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(ClientConfig{
		Host:        "ch",
		Port:        9000,
		Database:    "sentipnl",
		User:        "default",
		Password:    "p@ss",
		DialTimeout: 5 * time.Second,
		MaxExecTime: 30 * time.Second,
	})
	if !strings.HasPrefix(dsn, "clickhouse://default:p%40ss@ch:9000/sentipnl?") {
		t.Fatalf("dsn %s", dsn)
	}
	if !strings.Contains(dsn, "dial_timeout=5s") || !strings.Contains(dsn, "max_execution_time=30") {
		t.Fatalf("dsn %s", dsn)
	}
	if strings.Contains(dsn, "write_timeout") {
		t.Fatalf("write_timeout must not be sent: %s", dsn)
	}
}

func TestBuildDSNHTTP(t *testing.T) {
	dsn := BuildDSN(ClientConfig{Host: "ch", Port: 8123, Database: "db", UseHTTP: true})
	if !strings.HasPrefix(dsn, "http://") {
		t.Fatalf("dsn %s", dsn)
	}
}

func TestSchemaUsesDatabase(t *testing.T) {
	stmts := Schema("analytics")
	if len(stmts) != 3 {
		t.Fatalf("got %d statements", len(stmts))
	}
	for _, s := range stmts[1:] {
		if !strings.Contains(s, "analytics.") {
			t.Fatalf("statement not scoped: %s", s)
		}
	}
}
