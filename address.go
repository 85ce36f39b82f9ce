package ddns

import (
	"regexp"
	"strconv"
	"strings"
)

var dottedQuad = regexp.MustCompile(`^([0-9]{1,3}\.){3}[0-9]{1,3}$`)

// IsDottedQuad reports whether s is four dot-separated groups of one to three digits,
// each no greater than 255.
//
// Leading zeros are accepted and kept as-is: "010.1.1.1" is valid and is not equal to "10.1.1.1"
// when compared against the value stored in DNS.
func IsDottedQuad(s string) bool {
	if !dottedQuad.MatchString(s) {
		return false
	}
	for _, octet := range strings.Split(s, ".") {
		n, err := strconv.Atoi(octet)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}
