package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Price is a monetary amount. Clients (and older documents) send it either as
// a JSON number or as a numeric string; it is always stored as a double.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*p = Price(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("price must be a number or a numeric string")
	}
	return p.parse(s)
}

func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Double:
		f, _, ok := bsoncore.ReadDouble(data)
		if !ok {
			return fmt.Errorf("price: malformed double")
		}
		if !finite(f) {
			return fmt.Errorf("price %v is not a finite number", f)
		}
		*p = Price(f)
	case bsontype.Int32:
		i, _, ok := bsoncore.ReadInt32(data)
		if !ok {
			return fmt.Errorf("price: malformed int32")
		}
		*p = Price(i)
	case bsontype.Int64:
		i, _, ok := bsoncore.ReadInt64(data)
		if !ok {
			return fmt.Errorf("price: malformed int64")
		}
		*p = Price(i)
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("price: malformed string")
		}
		return p.parse(s)
	case bsontype.Null, bsontype.Undefined:
		*p = 0
	default:
		return fmt.Errorf("price: unsupported bson type %s", t)
	}
	return nil
}

func (p *Price) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*p = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(n) {
		return fmt.Errorf("price %q is not numeric", s)
	}
	*p = Price(n)
	return nil
}

// finite rejects the NaN and Inf spellings strconv accepts.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
