package checksum

import "hash/crc32"

// crc32cHasher Castagnoli 多项式，结果放在低 32 位
type crc32cHasher struct {
	table *crc32.Table
}

func newCRC32CHasher() crc32cHasher {
	return crc32cHasher{table: crc32.MakeTable(crc32.Castagnoli)}
}

func (h crc32cHasher) Sum(data []byte) uint64 {
	return uint64(crc32.Checksum(data, h.table))
}

func (crc32cHasher) Type() Type { return TypeCRC32C }
