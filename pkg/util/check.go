package util

import (
	"encoding/json"
	"math"
	"net"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexPattern         = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	leadingZeroPattern = regexp.MustCompile(`^0[0-9a-fA-F]+$`)
	ipPattern          = regexp.MustCompile(`^(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)(:([0-9]{1,5}))?$`)
)

// IsHex reports whether s is a non-empty, even-length hexadecimal string.
func IsHex(s string) bool {
	return len(s)%2 == 0 && hexPattern.MatchString(s)
}

// IsIP reports whether s is a dotted IPv4 address with an optional port.
func IsIP(s string) bool {
	if !ipPattern.MatchString(s) {
		return false
	}
	host := s
	if h, _, err := net.SplitHostPort(s); err == nil {
		host = h
	}
	return net.ParseIP(host) != nil
}

// IsInt reports whether v is an integral number or a string holding one.
// json.RawMessage values are decoded first; anything that is not a number or a
// string is rejected.
func IsInt(v any) bool {
	f, text, ok := numeric(v)
	if !ok || leadingZeroPattern.MatchString(text) {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

// IsNumeric reports whether v is a finite number or a string holding one.
func IsNumeric(v any) bool {
	f, text, ok := numeric(v)
	if !ok || leadingZeroPattern.MatchString(text) {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 1)
}

// ParseInt converts v to an integer the way parseInt does for the values RPC
// nodes return: fractional parts are dropped, empty values read as zero.
func ParseInt(v any) (int64, bool) {
	f, _, ok := numeric(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

// numeric extracts a float and its textual form from v.
func numeric(v any) (float64, string, bool) {
	switch x := v.(type) {
	case json.RawMessage:
		return numericRaw(x)
	case []byte:
		return numericRaw(x)
	case json.Number:
		return jsNumber(x.String())
	case string:
		return jsNumber(x)
	case int:
		return float64(x), strconv.Itoa(x), true
	case int32:
		return float64(x), strconv.FormatInt(int64(x), 10), true
	case int64:
		return float64(x), strconv.FormatInt(x, 10), true
	case uint:
		return float64(x), strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return float64(x), strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return float64(x), strconv.FormatUint(x, 10), true
	case float32:
		return float64(x), strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return x, strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return 0, "", false
	}
}

func numericRaw(raw []byte) (float64, string, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return 0, "", false
	}
	if text[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return 0, "", false
		}
		return jsNumber(s)
	}
	if text[0] == '-' || (text[0] >= '0' && text[0] <= '9') {
		return jsNumber(text)
	}
	return 0, "", false
}

// jsNumber converts s following Number(s): surrounding whitespace is ignored,
// an empty string is zero, 0x/0o/0b prefixes select the base.
func jsNumber(s string) (float64, string, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, t, true
	}
	switch t {
	case "Infinity", "+Infinity":
		return math.Inf(1), t, true
	case "-Infinity":
		return math.Inf(-1), t, true
	}
	if len(t) > 2 && t[0] == '0' {
		base := 0
		switch t[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(t[2:], base, 64)
			if err != nil {
				return math.NaN(), t, true
			}
			return float64(n), t, true
		}
	}
	lower := strings.ToLower(t)
	if strings.ContainsAny(lower, "_xpn") || strings.Contains(lower, "inf") {
		return math.NaN(), t, true
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN(), t, true
	}
	return f, t, true
}
