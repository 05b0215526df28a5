package postgres

import (
	"context"
	"testing"
	"time"
)

func TestNewPostgresPoolSetsQueryTimeout(t *testing.T) {
	prev := queryTimeout
	defer func() { queryTimeout = prev }()

	st, err := NewPostgresPool("user", "pass", "localhost", "5432", "db", 42*time.Second)
	if err != nil {
		t.Fatalf("NewPostgresPool() error = %v", err)
	}
	defer st.Close()

	ctx, cancel := withTimeout(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("store context should carry a deadline")
	}
	if remaining := time.Until(deadline); remaining < 40*time.Second || remaining > 42*time.Second {
		t.Errorf("deadline in %v, want about 42s", remaining)
	}
}

func TestNewPostgresPoolKeepsDefaultTimeout(t *testing.T) {
	prev := queryTimeout
	defer func() { queryTimeout = prev }()

	st, err := NewPostgresPool("user", "pass", "localhost", "5432", "db", 0)
	if err != nil {
		t.Fatalf("NewPostgresPool() error = %v", err)
	}
	defer st.Close()

	if queryTimeout != 5*time.Second {
		t.Errorf("queryTimeout = %v, want the 5s default", queryTimeout)
	}
}
