package nokogiri

import (
	"context"
	"testing"
)

func TestCustomResolverLookupLiteralIP(t *testing.T) {
	r := newCustomResolver()
	ips, err := r.lookup(context.Background(), "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ips) != 1 || ips[0].String() != "127.0.0.1" {
		t.Errorf("ips = %v, want [127.0.0.1]", ips)
	}
}

func TestCustomResolverLookupLiteralIPv6(t *testing.T) {
	r := newCustomResolver()
	ips, err := r.lookup(context.Background(), "::1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ips) != 1 || ips[0].String() != "::1" {
		t.Errorf("ips = %v, want [::1]", ips)
	}
}
