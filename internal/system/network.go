package system

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

type NetInfo interface {
	IP(ctx context.Context) (string, error)
}

type NoopNetInfo struct{}

func (NoopNetInfo) IP(ctx context.Context) (string, error) { return "", nil }

// InterfaceNetInfo reports the first non-loopback IPv4 address of the host.
type InterfaceNetInfo struct{}

func (InterfaceNetInfo) IP(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("interface addresses: %w", err)
	}
	return firstIPv4(addrs), nil
}

func firstIPv4(addrs []net.Addr) string {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.IsLinkLocalUnicast() {
			continue
		}
		if v4 := ipnet.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

// WebURL builds the URL under which the web UI is reachable on ip, taking the
// port from a listen address such as ":8080" or "0.0.0.0:80".
func WebURL(ip, listenAddr string) string {
	if ip == "" {
		return ""
	}
	port := "80"
	if _, p, err := net.SplitHostPort(listenAddr); err == nil && p != "" {
		port = p
	}
	host := ip
	if port != "80" {
		host = net.JoinHostPort(ip, port)
	}
	if n, err := strconv.Atoi(port); err == nil && n == 443 {
		return "https://" + ip + "/"
	}
	return "http://" + host + "/"
}
