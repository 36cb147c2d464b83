// Package transport implements the abstract remote-transport capability
// set used by push/pull/prune: open/connect, send/receive, list/delete,
// and close, with concrete drivers for file://, s3://, and http(s)://
// URLs. The core only depends on the Transport interface; drivers are
// opaque to it.
package transport

import (
	"fmt"
	"net/url"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// Transport is the capability set a remote driver must implement.
type Transport interface {
	// Connect establishes the driver's connection (opening a client,
	// verifying credentials) before any data operations.
	Connect() error

	// SendData uploads buf under remoteKey.
	SendData(remoteKey string, buf []byte) error

	// ReceiveData downloads the object named remoteKey.
	ReceiveData(remoteKey string) ([]byte, error)

	// ListFiles returns the keys under prefix.
	ListFiles(prefix string) ([]string, error)

	// DeleteFiles removes the named keys.
	DeleteFiles(keys []string) error

	// Close releases driver resources. It is always safe to call more
	// than once.
	Close() error
}

// Open dispatches url to the driver matching its scheme: file://, s3://,
// or http(s)://.
func Open(rawURL string, settings *config.Settings) (Transport, error) {
	const op = "transport.Open"
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindInvalidInput, err)
	}

	switch u.Scheme {
	case "file":
		return newFileTransport(u), nil
	case "s3":
		return newS3Transport(u, settings)
	case "http", "https":
		return newHTTPTransport(u, settings), nil
	default:
		return nil, ebterr.New(op, ebterr.KindInvalidInput, fmt.Sprintf("unsupported remote scheme %q", u.Scheme))
	}
}
