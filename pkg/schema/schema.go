// Package schema holds the Avro contracts of the order events and their
// schema registry serdes.
package schema

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

func AvroEncodeFn(s avro.Schema) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(s, v)
	}
}

func AvroDecodeFn(s avro.Schema) func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(s, data, v)
	}
}

// A SchemaIdentifier returns the registry ID of a schema under the subject,
// registering it when needed.
type SchemaIdentifier interface {
	DetermineID(
		ctx context.Context, subject string, avroSchemaText string,
	) (id int, err error)
}

// A RegistryIdentifier is a [SchemaIdentifier] backed by a schema registry.
type RegistryIdentifier struct {
	cl *sr.Client
}

var _ SchemaIdentifier = RegistryIdentifier{}

// NewRegistryIdentifier creates the registry client. The TLS config is
// optional.
func NewRegistryIdentifier(
	urls []string, tlsConfig *tls.Config,
) (RegistryIdentifier, error) {
	const op = "NewRegistryIdentifier"

	opts := []sr.ClientOpt{sr.URLs(urls...)}
	if tlsConfig != nil {
		opts = append(opts, sr.HTTPClient(&http.Client{
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		}))
	}

	cl, err := sr.NewClient(opts...)
	if err != nil {
		return RegistryIdentifier{}, fmt.Errorf("%s: %w", op, err)
	}
	return RegistryIdentifier{cl}, nil
}

func (ri RegistryIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	const op = "RegistryIdentifier.DetermineID"

	ss, err := ri.cl.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
