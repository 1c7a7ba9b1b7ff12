package category

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// fingerprintDomain separates tree fingerprints from any other hash the
// program computes. The suffix versions the encoding.
const fingerprintDomain = "mediatree/tree/v1"

// Fingerprint returns a stable hex digest of the configuration carried by
// the tree rooted at n: property, heading flag, bucket size and child
// order. Labels are not configuration and are ignored, so a template and
// the instances derived from it share a fingerprint.
func Fingerprint(n *Node) string {
	var b strings.Builder
	writeCanonical(&b, n)

	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(b.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// writeCanonical encodes n as a parenthesized prefix form. Properties are
// quoted so that no property value can forge structure.
func writeCanonical(b *strings.Builder, n *Node) {
	b.WriteByte('(')
	b.WriteString(strconv.Quote(n.property))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatBool(n.useHeading))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(n.bucketSize))
	for _, c := range n.children {
		b.WriteByte(' ')
		writeCanonical(b, c)
	}
	b.WriteByte(')')
}
