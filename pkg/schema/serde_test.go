package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeOrderV1(t *testing.T) {
	subject := "orders-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(t.Context())
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		errRegistry := errors.New("registry unavailable")
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", t.Context(), subject, schema.OrderSchemaTextV1).
			Return(0, errRegistry)

		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.ErrorIs(t, err, errRegistry)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", t.Context(), subject, schema.OrderSchemaTextV1).
			Return(7, nil)

		serde, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)
		si.AssertExpectations(t)

		in := schema.OrderV1{
			OrderID:       "WB-123456",
			PlacedAt:      time.UnixMilli(1700000000000).UTC(),
			PaymentMethod: "paypal",
			Country:       "US",
			Items: []schema.OrderItemV1{
				{ProductID: 1, Name: "Dress", Size: "M", Color: "Black", Price: 149.99, Quantity: 2},
			},
			Subtotal: "299.98",
			Shipping: "0",
			Tax:      "24",
			Total:    "323.98",
		}

		data, err := serde.Encode(in)
		require.NoError(t, err)
		// magic byte and big endian schema id
		assert.Equal(t, []byte{0, 0, 0, 0, 7}, data[:5])

		var out schema.OrderV1
		require.NoError(t, serde.Decode(data, &out))
		assert.Equal(t, in.OrderID, out.OrderID)
		assert.True(t, in.PlacedAt.Equal(out.PlacedAt))
		assert.Equal(t, in.Items, out.Items)
		assert.Equal(t, in.Total, out.Total)
	})
}

func TestSerdeOrderStatsV1(t *testing.T) {
	subject := "order-stats-value"
	si := new(MockSchemaIdentifier)
	si.On("DetermineID", t.Context(), subject, schema.OrderStatsSchemaTextV1).
		Return(3, nil)

	serde, err := schema.NewSerdeOrderStatsV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(si),
	)
	require.NoError(t, err)

	in := schema.OrderStatsV1{Orders: 2, Items: 5, Revenue: "120.5"}
	data, err := serde.Encode(in)
	require.NoError(t, err)

	var out schema.OrderStatsV1
	require.NoError(t, serde.Decode(data, &out))
	assert.Equal(t, in, out)
}

func TestSchemasParse(t *testing.T) {
	assert.NotPanics(t, func() {
		schema.OrderV1Avro()
		schema.OrderStatsV1Avro()
	})
}
