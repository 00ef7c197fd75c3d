package minibank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arhyth/minibank"
)

func TestSHA256Hasher(t *testing.T) {
	t.Run("same input always yields same digest", func(tt *testing.T) {
		as := assert.New(tt)
		h := minibank.SHA256Hasher{}
		as.Equal(h.Digest("123456"), h.Digest("123456"))
	})

	t.Run("different inputs yield different digests", func(tt *testing.T) {
		as := assert.New(tt)
		h := minibank.SHA256Hasher{}
		pins := []string{"123456", "123457", "000000", "654321", "1234567"}
		seen := make(map[string]string, len(pins))
		for _, p := range pins {
			d := h.Digest(p)
			prev, dup := seen[d]
			as.Falsef(dup, "digest collision between %q and %q", p, prev)
			seen[d] = p
		}
	})

	t.Run("digest is fixed-length hex", func(tt *testing.T) {
		as := assert.New(tt)
		h := minibank.SHA256Hasher{}
		d := h.Digest("123456")
		as.Len(d, 64)
		as.Regexp("^[0-9a-f]+$", d)
	})
}
