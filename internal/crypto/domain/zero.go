package domain

// Zero overwrites the given byte slice with zeros.
//
// Use this to clear sensitive key material and plaintext from memory as soon
// as it is no longer needed. The compiler cannot elide the writes because the
// slice escapes through the function boundary.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
