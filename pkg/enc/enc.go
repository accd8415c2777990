package enc

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // network-defined short hash

	"github.com/zigap/xphere-sdk-go/pkg/util"
)

const (
	ShortHashSize = 40
	IDHashSize    = 44
	HashSize      = 64
	HexTimeSize   = 14
	TimeHashSize  = 78
	ChecksumSize  = 4
)

// ZeroAddress is the all-zero id-hash used as the null account.
var ZeroAddress = strings.Repeat("0", IDHashSize)

const hexTimeMask = 1<<56 - 1

// Hash returns the hex SHA-256 of the canonical string of v.
func Hash(v any) string {
	sum := sha256.Sum256([]byte(String(v)))
	return common.Bytes2Hex(sum[:])
}

// ShortHash returns the hex RIPEMD-160 of Hash(v).
func ShortHash(v any) string {
	h := ripemd160.New()
	h.Write([]byte(Hash(v)))
	return common.Bytes2Hex(h.Sum(nil))
}

// Checksum returns the first four characters of Hash(Hash(h)).
func Checksum(h string) string {
	return Hash(Hash(h))[:ChecksumSize]
}

// HexTime formats a microsecond timestamp as 14 hex characters. Without an
// argument the current time is used.
func HexTime(utime ...int64) string {
	t := util.UTime()
	if len(utime) > 0 {
		t = utime[0]
	}
	s := strconv.FormatUint(uint64(t)&hexTimeMask, 16)
	return strings.Repeat("0", HexTimeSize-len(s)) + s
}

// TimeHash prefixes Hash(v) with HexTime(utime).
func TimeHash(v any, utime ...int64) string {
	return HexTime(utime...) + Hash(v)
}

func TimeHashValidity(h string) bool {
	return IsHex(h) && len(h) == TimeHashSize
}

// IDHash returns ShortHash(v) followed by its checksum. Addresses are id-hashes
// of public keys.
func IDHash(v any) string {
	short := ShortHash(v)
	return short + Checksum(short)
}

// IDHashValidity reports whether h is a 44 character id-hash whose last four
// characters match the checksum of the first forty.
func IDHashValidity(h string) bool {
	if !IsHex(h) || len(h) != IDHashSize {
		return false
	}
	return Checksum(h[:ShortHashSize]) == h[ShortHashSize:]
}

// IsHex reports whether s is a non-empty, even-length hex string.
func IsHex(s string) bool {
	return util.IsHex(s)
}

// SpaceID identifies a contract space owned by writer.
func SpaceID(writer, space string) string {
	return Hash([]any{writer, space})
}

// CID is an alias of SpaceID.
func CID(writer, space string) string {
	return SpaceID(writer, space)
}

// TxHash returns the time-hash of a transaction: the transaction is hashed,
// and that hash is hashed again under the transaction's own timestamp.
func TxHash(tx Object) string {
	if v, ok := Get(tx, "timestamp"); ok {
		if ts, ok := Int64(v); ok {
			return TimeHash(Hash(tx), ts)
		}
	}
	return TimeHash(Hash(tx))
}
