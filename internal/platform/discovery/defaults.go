// Package discovery centralizes in-network address conventions for ledger
// processes.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceLedger is the ledger service identity.
	ServiceLedger = "ledger"
	// ServiceJaeger is the trace collector UI identity.
	ServiceJaeger = "jaeger"
)

// Default ports for the ledger process.
const (
	LedgerGRPCPort = 8095
	LedgerHTTPPort = 8096
)

var grpcPorts = map[string]int{
	ServiceLedger: LedgerGRPCPort,
}

var httpPorts = map[string]int{
	ServiceLedger: LedgerHTTPPort,
	ServiceJaeger: 16686,
}

// DefaultGRPCAddr returns the in-network gRPC address for service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the in-network HTTP address for service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrDefaultHTTPBaseURL returns value when set, otherwise http://<host:port>.
func OrDefaultHTTPBaseURL(value, service string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	addr := DefaultHTTPAddr(service)
	if addr == "" {
		return ""
	}
	return "http://" + addr
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return service + ":" + strconv.Itoa(port)
}
