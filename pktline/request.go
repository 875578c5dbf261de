package pktline

import (
	"bytes"
	"fmt"
)

// BuildWantRequest builds the fixed-shape git-upload-pack request
// body for a single ref: a "want" line naming id, a flush, and a
// "done" line. No capability negotiation is attempted. It is written
// with the package's own substream Writer, the same type a streaming
// caller would use, rather than hand-framing the bytes a second way.
func BuildWantRequest(id string) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteString(fmt.Sprintf("want %s\n", id))
	w.Flush()
	w.WriteString("done\n")
	return buf.Bytes()
}
