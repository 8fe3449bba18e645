package hashid

import (
	"fmt"
	"math"

	"github.com/speps/go-hashids/v2"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
)

// Alphabet and MinLength shape every public id
const (
	Alphabet  = "abcdefghijklmnopqrstuvwxyz1234567890"
	MinLength = 10
)

// Salt suffixes separate the id spaces of each resource
const (
	ScopePolaroid      = "polaroid"
	ScopeAccount       = "account"
	ScopeChargeProduct = "charge_product"
)

// Codec implements core.IDCodec with hashids
type Codec struct {
	hash *hashids.HashID
}

var _ core.IDCodec = (*Codec)(nil)

// NewCodec builds a codec for a resource scope; the salt is the configured salt plus the scope
func NewCodec(salt, scope string) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt + scope
	data.MinLength = MinLength
	data.Alphabet = Alphabet

	hash, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("create hashid codec for %s: %w", scope, err)
	}
	return &Codec{hash: hash}, nil
}

// Encode returns the public id of a row id, empty when it cannot be encoded
func (c *Codec) Encode(id uint64) string {
	if id > math.MaxInt64 {
		return ""
	}
	encoded, err := c.hash.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return ""
	}
	return encoded
}

// Decode returns the row id of a public id
func (c *Codec) Decode(publicID string) (uint64, bool) {
	if publicID == "" {
		return 0, false
	}
	numbers, err := c.hash.DecodeInt64WithError(publicID)
	if err != nil || len(numbers) != 1 || numbers[0] < 0 {
		return 0, false
	}
	return uint64(numbers[0]), true
}

// Codecs bundles the codec of every scope
type Codecs struct {
	Polaroid      *Codec
	Account       *Codec
	ChargeProduct *Codec
}

// NewCodecs builds the codecs of every scope from one salt
func NewCodecs(salt string) (*Codecs, error) {
	polaroid, err := NewCodec(salt, ScopePolaroid)
	if err != nil {
		return nil, err
	}
	account, err := NewCodec(salt, ScopeAccount)
	if err != nil {
		return nil, err
	}
	chargeProduct, err := NewCodec(salt, ScopeChargeProduct)
	if err != nil {
		return nil, err
	}
	return &Codecs{Polaroid: polaroid, Account: account, ChargeProduct: chargeProduct}, nil
}
