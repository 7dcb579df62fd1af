package checksum

import "github.com/cespare/xxhash/v2"

type xxhashHasher struct{}

func (xxhashHasher) Sum(data []byte) uint64 { return xxhash.Sum64(data) }

func (xxhashHasher) Type() Type { return TypeXXHash }
