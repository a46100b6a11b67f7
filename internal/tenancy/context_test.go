package tenancy

import (
	"context"
	"testing"
)

func TestBusinessIDRoundTrip(t *testing.T) {
	ctx := WithBusinessID(context.Background(), "biz-42")

	got, ok := BusinessIDFromContext(ctx)
	if !ok {
		t.Fatal("expected business id to be present")
	}
	if got != "biz-42" {
		t.Errorf("got %q, want %q", got, "biz-42")
	}
}

func TestBusinessIDMissing(t *testing.T) {
	if _, ok := BusinessIDFromContext(context.Background()); ok {
		t.Error("expected no business id on empty context")
	}
}

func TestBusinessIDEmptyValue(t *testing.T) {
	ctx := WithBusinessID(context.Background(), "")
	if _, ok := BusinessIDFromContext(ctx); ok {
		t.Error("expected empty business id to be treated as absent")
	}
}
