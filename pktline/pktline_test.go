package pktline_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeerrry/gitlit/pktline"
)

// line frames payload as a single packet-line, the way a real server would.
func line(payload string) string {
	return fmt.Sprintf("%04x", len(payload)+4) + payload
}

const flush = "0000"

func TestTokenizeRoundTrip(t *testing.T) {
	data := []byte(line("# service=git-upload-pack\n") + flush +
		line("hello\n") + flush)

	toks, err := pktline.Tokenize(data)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.False(t, toks[0].Flush)
	assert.Equal(t, "# service=git-upload-pack\n", string(toks[0].Payload))
	assert.True(t, toks[1].Flush)
	assert.Equal(t, "hello\n", string(toks[2].Payload))
	assert.True(t, toks[3].Flush)
}

func TestTokenizeRejectsShortPrefix(t *testing.T) {
	_, err := pktline.Tokenize([]byte("001"))
	assert.ErrorIs(t, err, pktline.ErrBadFraming)
}

func TestTokenizeRejectsLengthPastEnd(t *testing.T) {
	_, err := pktline.Tokenize([]byte("00ffshort"))
	assert.ErrorIs(t, err, pktline.ErrBadFraming)
}

func TestExtractHead(t *testing.T) {
	head := "1111111111111111111111111111111111111111"
	ref := head + " HEAD\x00multi_ack\n"

	data := []byte(line("# service=git-upload-pack\n") + flush +
		line(ref) + flush)

	got, err := pktline.ExtractHead(data)
	require.NoError(t, err)
	assert.Equal(t, head, got)
}

func TestExtractHeadNoFlush(t *testing.T) {
	data := []byte(line("# service=git-upload-pack\n"))
	_, err := pktline.ExtractHead(data)
	assert.ErrorIs(t, err, pktline.ErrNoHead)
}

func TestExtractHeadShortPayload(t *testing.T) {
	data := []byte(line("# service=git-upload-pack\n") + flush + line("short"))
	_, err := pktline.ExtractHead(data)
	assert.ErrorIs(t, err, pktline.ErrNoHead)
}

func TestBuildWantRequest(t *testing.T) {
	id := "2222222222222222222222222222222222222222"
	req := pktline.BuildWantRequest(id)

	toks, err := pktline.Tokenize(req)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "want "+id+"\n", string(toks[0].Payload))
	assert.True(t, toks[1].Flush)
	assert.Equal(t, "done\n", string(toks[2].Payload))
}

func TestDemuxCollectsChannelOne(t *testing.T) {
	pack := "PACK" + "\x00\x00\x00\x02" + "\x00\x00\x00\x00"

	data := []byte(line("NAK\n") +
		line("\x01"+pack[:8]) +
		flush +
		line("\x02progress message\n") +
		line("\x01"+pack[8:]) +
		flush)

	got := pktline.Demux(data)
	assert.Equal(t, pack, string(got))
}

func TestDemuxFallsBackToRawMagic(t *testing.T) {
	data := []byte("garbage-before-pack" + "PACK" + "\x00\x00\x00\x02trailer")
	got := pktline.Demux(data)
	assert.Equal(t, "PACK\x00\x00\x00\x02trailer", string(got))
}
