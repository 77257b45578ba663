package requestctx

import (
	"context"
	"testing"
)

func TestCallerRoundTrip(t *testing.T) {
	ctx := WithCaller(context.Background(), "ST1TAXPAYER")
	if got := CallerFromContext(ctx); got != "ST1TAXPAYER" {
		t.Fatalf("caller = %q, want %q", got, "ST1TAXPAYER")
	}
}

func TestCallerMissing(t *testing.T) {
	if got := CallerFromContext(context.Background()); got != "" {
		t.Fatalf("caller = %q, want empty", got)
	}
	if got := CallerFromContext(nil); got != "" {
		t.Fatalf("caller from nil ctx = %q, want empty", got)
	}
}

func TestHeightRoundTrip(t *testing.T) {
	ctx := WithHeight(context.Background(), 162500)
	got, ok := HeightFromContext(ctx)
	if !ok {
		t.Fatal("expected height to be set")
	}
	if got != 162500 {
		t.Fatalf("height = %d, want 162500", got)
	}
}

func TestHeightMissing(t *testing.T) {
	if _, ok := HeightFromContext(context.Background()); ok {
		t.Fatal("expected height to be unset")
	}
	ctx := WithHeight(context.Background(), 0)
	if got, ok := HeightFromContext(ctx); !ok || got != 0 {
		t.Fatalf("zero height = (%d, %v), want (0, true)", got, ok)
	}
}
