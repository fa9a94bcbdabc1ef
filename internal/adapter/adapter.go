// Package adapter holds helpers shared by the outbound adapters.
package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// MakeTLSConfig returns a client [*tls.Config] with mutual authentication.
// It panics on unreadable files.
//
// All args are the filepaths.
func MakeTLSConfig(ca, cert, key string) *tls.Config {
	const op = "adapter.MakeTLSConfig"

	caCert, err := os.ReadFile(ca)
	if err != nil {
		panic(fmt.Errorf("%s: failed to read CA certificate file: %w", op, err))
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		panic(fmt.Errorf("%s: failed to parse CA certificate", op))
	}

	clientCert, err := tls.LoadX509KeyPair(cert, key)
	if err != nil {
		panic(fmt.Errorf("%s: %w", op, err))
	}

	return &tls.Config{
		RootCAs:      caCertPool,
		Certificates: []tls.Certificate{clientCert},
		MinVersion:   tls.VersionTLS12,
	}
}
