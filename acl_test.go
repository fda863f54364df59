package nokogiri

import (
	"net"
	"testing"
)

func TestIsGlobalUnicast(t *testing.T) {
	cases := []struct {
		ip   string
		want bool
	}{
		{"8.8.8.8", true},
		{"1.1.1.1", true},
		{"127.0.0.1", false},
		{"10.0.0.1", false},
		{"172.16.0.5", false},
		{"192.168.1.1", false},
		{"169.254.1.1", false},
		{"100.64.0.1", false},  // CGNAT
		{"100.127.255.254", false},
		{"100.128.0.1", true}, // just outside the CGNAT block
		{"224.0.0.1", false},  // multicast
		{"0.0.0.0", false},
		{"::1", false},
		{"fc00::1", false}, // IPv6 ULA
		{"fd00::1", false},
		{"2001:4860:4860::8888", true}, // google DNS v6
	}
	for _, c := range cases {
		ip := net.ParseIP(c.ip)
		if ip == nil {
			t.Fatalf("bad test IP %q", c.ip)
		}
		if got := isGlobalUnicast(ip); got != c.want {
			t.Errorf("isGlobalUnicast(%s) = %v, want %v", c.ip, got, c.want)
		}
	}
}

func TestCheckEgressDefaultAllow(t *testing.T) {
	if err := checkEgress("internal.example", net.ParseIP("127.0.0.1"), false); err != nil {
		t.Errorf("blockNonGlobal=false must default-allow, got %v", err)
	}
}

func TestCheckEgressBlocksNonGlobal(t *testing.T) {
	err := checkEgress("internal.example", net.ParseIP("192.168.1.1"), true)
	if err == nil {
		t.Fatal("expected a blocked-host error")
	}
	var blocked *errHostBlocked
	if _, ok := err.(*errHostBlocked); !ok {
		t.Errorf("expected *errHostBlocked, got %T", err)
	} else {
		blocked = err.(*errHostBlocked)
		if blocked.host != "internal.example" {
			t.Errorf("unexpected host in error: %q", blocked.host)
		}
	}
}

func TestCheckEgressAllowlistEscapeHatch(t *testing.T) {
	setACLAllowlist([]string{"192.168.1.0/24"})
	defer setACLAllowlist(nil)

	if err := checkEgress("mirror.internal", net.ParseIP("192.168.1.42"), true); err != nil {
		t.Errorf("allowlisted CIDR must bypass the block, got %v", err)
	}
	if err := checkEgress("mirror.internal", net.ParseIP("192.168.2.42"), true); err == nil {
		t.Error("address outside the allowlisted CIDR must still be blocked")
	}
}
