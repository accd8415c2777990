// Package util holds small helpers shared by the codec, the dispatcher and the
// submission workflow: microsecond clocks, JavaScript-compatible numeric
// predicates, endpoint normalization, set-like slice helpers and decimal
// conversion between display amounts and base units.
//
// # Time
//
// The network stamps requests and transactions in microseconds:
//
//	util.Time()      // seconds
//	util.UTime()     // microseconds (milliseconds * 1000)
//	util.UCeilTime() // next whole second, in microseconds
//
// # Numbers
//
// IsInt and IsNumeric follow the rules RPC nodes apply to loosely typed
// values: numbers and numeric strings are accepted, while strings with a
// leading zero followed by more hex digits ("012", "0ff") are rejected.
//
//	util.IsInt("42")   // true
//	util.IsInt("012")  // false
//	util.IsInt(1.5)    // false
//
// # Amounts
//
// ApplyDecimal renders a base-unit integer with the given number of decimals,
// ToBaseUnits goes the other way:
//
//	util.ApplyDecimal("1500000000000000000", 18) // "1.5", nil
//	util.ToBaseUnits("1.5", 18)                  // 1500000000000000000, nil
package util
