package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPriceUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Price
		wantErr bool
	}{
		{name: "number", body: `{"price": 12.5}`, want: 12.5},
		{name: "numeric_string", body: `{"price": "5"}`, want: 5},
		{name: "padded_string", body: `{"price": " 7.25 "}`, want: 7.25},
		{name: "empty_string", body: `{"price": ""}`, want: 0},
		{name: "word", body: `{"price": "ten"}`, wantErr: true},
		{name: "bool", body: `{"price": true}`, wantErr: true},
		{name: "nan_string", body: `{"price": "NaN"}`, wantErr: true},
		{name: "infinity_string", body: `{"price": "Infinity"}`, wantErr: true},
		{name: "negative_inf_string", body: `{"price": "-Inf"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item CartItem
			err := json.Unmarshal([]byte(tt.body), &item)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.Price)
		})
	}
}

func TestPriceDecodesLegacyStringFromBSON(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"email": "a@x.com", "price": "19.99", "quantity": 1})
	require.NoError(t, err)

	var item CartItem
	require.NoError(t, bson.Unmarshal(raw, &item))
	assert.InDelta(t, 19.99, float64(item.Price), 1e-9)
	assert.Equal(t, 1, item.Quantity)
}

func TestPriceStoredAsDouble(t *testing.T) {
	raw, err := bson.Marshal(CartItem{Email: "a@x.com", Price: 4, Quantity: 2})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, float64(4), doc["price"])

	var back CartItem
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, Price(4), back.Price)
}

func TestPriceRejectsNonFiniteBSONDouble(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"email": "a@x.com", "price": math.Inf(1), "quantity": 1})
	require.NoError(t, err)

	var item CartItem
	assert.Error(t, bson.Unmarshal(raw, &item))
}
