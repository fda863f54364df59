package nokogiri

import "net"

// errHostBlocked is the "host resolution blocked" condition spec §4.5
// requires to be distinguishable from a generic transport error.
type errHostBlocked struct {
	host string
	ip   net.IP
}

func (e *errHostBlocked) Error() string {
	return "nokogiri: host resolution blocked: " + e.host + " resolved to non-global address " + e.ip.String()
}

// aclAllowedIPNets is parsed once from security.allowed_private_ips; any
// address inside one of these CIDRs bypasses the non-global-IP block, an
// escape hatch supplemented from original_source (not present verbatim in
// spec.md, but compatible with §4.5's default-allow policy and needed to
// let operators point the service at an internal mirror deliberately).
var aclAllowedIPNets []*net.IPNet

func setACLAllowlist(cidrs []string) {
	aclAllowedIPNets = aclAllowedIPNets[:0]
	for _, c := range cidrs {
		if _, n, err := net.ParseCIDR(c); err == nil {
			aclAllowedIPNets = append(aclAllowedIPNets, n)
		}
	}
}

func isAllowlisted(ip net.IP) bool {
	for _, n := range aclAllowedIPNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// isGlobalUnicast classifies ip per spec §4.5's enumeration of non-global
// ranges: loopback, link-local (unicast and multicast), private (RFC1918),
// unique-local (IPv6 ULA, fc00::/7), carrier-grade NAT (100.64.0.0/10),
// unspecified, multicast, and other IANA-reserved blocks.
func isGlobalUnicast(ip net.IP) bool {
	if ip == nil {
		return false
	}
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsMulticast() || ip.IsUnspecified() || ip.IsPrivate() {
		return false
	}
	if ip4 := ip.To4(); ip4 != nil {
		if cgnat.Contains(ip4) || thisNetwork.Contains(ip4) || reservedV4.Contains(ip4) {
			return false
		}
		return true
	}
	// IPv6: unique local fc00::/7.
	if ip[0]&0xfe == 0xfc {
		return false
	}
	return ip.IsGlobalUnicast()
}

var cgnat = mustParseCIDR("100.64.0.0/10")
var thisNetwork = mustParseCIDR("0.0.0.0/8")
var reservedV4 = mustParseCIDR("240.0.0.0/4")

func mustParseCIDR(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return n
}

// checkEgress enforces the ACL after DNS resolution and before TCP connect,
// per spec §4.5. blockNonGlobal mirrors security.block_non_global_ips; when
// false the ACL is fully permissive (default-allow, as documented).
func checkEgress(host string, ip net.IP, blockNonGlobal bool) error {
	if !blockNonGlobal {
		return nil
	}
	if isAllowlisted(ip) {
		return nil
	}
	if !isGlobalUnicast(ip) {
		return &errHostBlocked{host: host, ip: ip}
	}
	return nil
}
