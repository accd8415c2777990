// Package enc implements the canonical encoding and hashing rules used by the
// Xphere network to identify requests, transactions, accounts and contract
// spaces.
//
// Every identifier is derived from the canonical string of a value (see
// String). Remote nodes recompute these identifiers byte for byte, so the
// encoding must not drift: the JSON form follows JSON.stringify, forward
// slashes are written as `\/` and every UTF-16 code unit above 0xff is written
// as a `\uXXXX` escape.
//
// # Identifiers
//
//	Hash       64 hex  sha256(String(v))
//	ShortHash  40 hex  ripemd160(Hash(v))
//	Checksum    4 hex  Hash(Hash(h))[:4]
//	IDHash     44 hex  ShortHash(v) + Checksum(ShortHash(v))   (addresses)
//	HexTime    14 hex  lower 56 bits of a microsecond timestamp
//	TimeHash   78 hex  HexTime(t) + Hash(v)                     (tx ids)
//
// # Key order
//
// The codec never reorders object keys. Use Object when key order matters:
//
//	tx := enc.Object{
//		{Key: "type", Value: "Send"},
//		{Key: "amount", Value: "100"},
//	}
//	id := enc.TxHash(tx)
//
// Go maps are written with sorted keys and structs in field order.
package enc
