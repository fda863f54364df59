package nokogiri

import (
	"context"
	"net"

	"github.com/miekg/dns"
)

// customResolver performs A and AAAA lookups with the Ipv4AndIpv6 strategy
// (both families, unordered union of results), mirroring
// original_source/src/core/request/resolver.rs's CustomDnsResolver built on
// hickory_resolver. miekg/dns gives us the same low-level control over the
// query without pulling in a second resolver's caching/fallback policy.
type customResolver struct {
	client  *dns.Client
	servers []string
}

func newCustomResolver() *customResolver {
	servers := systemNameservers()
	return &customResolver{client: new(dns.Client), servers: servers}
}

// systemNameservers reads /etc/resolv.conf, falling back to a well-known
// public resolver if that fails (e.g. minimal containers).
func systemNameservers() []string {
	cc, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(cc.Servers) == 0 {
		return []string{"1.1.1.1:53"}
	}
	out := make([]string, 0, len(cc.Servers))
	for _, s := range cc.Servers {
		out = append(out, net.JoinHostPort(s, cc.Port))
	}
	return out
}

// lookup returns the union of A and AAAA addresses for host. If host is
// already a literal IP, it is returned as-is with no network call.
func (r *customResolver) lookup(ctx context.Context, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}

	seen := make(map[string]net.IP)
	for _, qtype := range [...]uint16{dns.TypeA, dns.TypeAAAA} {
		ips, err := r.query(ctx, host, qtype)
		if err != nil {
			continue
		}
		for _, ip := range ips {
			seen[ip.String()] = ip
		}
	}
	if len(seen) == 0 {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	out := make([]net.IP, 0, len(seen))
	for _, ip := range seen {
		out = append(out, ip)
	}
	return out, nil
}

func (r *customResolver) query(ctx context.Context, host string, qtype uint16) ([]net.IP, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		resp, _, err := r.client.ExchangeContext(ctx, m, server)
		if err != nil {
			lastErr = err
			continue
		}
		var ips []net.IP
		for _, rr := range resp.Answer {
			switch rec := rr.(type) {
			case *dns.A:
				ips = append(ips, rec.A)
			case *dns.AAAA:
				ips = append(ips, rec.AAAA)
			}
		}
		return ips, nil
	}
	return nil, lastErr
}
