/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: patterns.go
Description: Shared text patterns for telemetry inference and detection. Defines the
IP-address shape and the purely-numeric value pattern used by format sniffing, column
inference, and the suspicious-record detectors.
*/

package inference

import "regexp"

// IPPattern matches four dot-separated 1-3 digit groups. Octet ranges are
// intentionally not validated: 999.999.1.1 counts as IP-shaped.
const IPPattern = `(?:\d{1,3}\.){3}\d{1,3}`

var (
	// IPRe finds IP-shaped substrings anywhere in a value
	IPRe = regexp.MustCompile(IPPattern)

	// ipPrefixRe anchors the IP shape to the start of a value
	ipPrefixRe = regexp.MustCompile(`^` + IPPattern)

	// numericRe matches an optionally signed number with an optional decimal part
	numericRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// IPShapedPrefix reports whether the value starts with an IP-shaped token
func IPShapedPrefix(value string) bool {
	return ipPrefixRe.MatchString(value)
}

// PurelyNumeric reports whether the whole value is an optionally signed
// number. The empty string is not numeric.
func PurelyNumeric(value string) bool {
	return numericRe.MatchString(value)
}
