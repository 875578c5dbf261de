package packfile_test

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeerrry/gitlit/object"
	"github.com/jeerrry/gitlit/packfile"
	"github.com/jeerrry/gitlit/store"
)

// packBuilder assembles a minimal, well-formed v2 pack stream for
// tests: a header followed by hand-framed objects, each deflated with
// the standard library's zlib (a byte-for-byte compatible stream as
// far as packfile.Decode is concerned).
type packBuilder struct {
	objects [][]byte
}

func (b *packBuilder) addNonDelta(typeCode byte, body []byte) {
	b.objects = append(b.objects, encodeObject(typeCode, nil, body))
}

func (b *packBuilder) addRefDelta(base object.ID, delta []byte) {
	b.objects = append(b.objects, encodeObject(7, base[:], delta))
}

func encodeObject(typeCode byte, baseID []byte, body []byte) []byte {
	var buf bytes.Buffer
	hdr := encodeHeader(typeCode, len(body))
	buf.Write(hdr)
	buf.Write(baseID)
	w := zlib.NewWriter(&buf)
	w.Write(body)
	w.Close()
	return buf.Bytes()
}

// encodeHeader builds a pack object preamble: bits 4-6 of the first
// byte carry the type, bit 7 of every byte is a continuation flag,
// and the size bits are 4 low bits in the first byte followed by 7
// bits per byte thereafter. Folding the whole thing into one number
// shifted this way and varint-encoding it is the exact inverse of how
// packfile's own readObjHeader decodes it.
func encodeHeader(typeCode byte, size int) []byte {
	hdr := uint64(size&0xF) | uint64(typeCode)<<4 | uint64(size>>4)<<7
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, hdr)
	return buf[:n]
}

func (b *packBuilder) bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("PACK")
	binary.Write(&buf, binary.BigEndian, uint32(2))
	binary.Write(&buf, binary.BigEndian, uint32(len(b.objects)))
	for _, o := range b.objects {
		buf.Write(o)
	}
	buf.Write(make([]byte, 20)) // unverified trailing checksum
	return buf.Bytes()
}

func TestDecodeNonDeltaObjects(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	var b packBuilder
	b.addNonDelta(3, []byte("hello world")) // blob
	require.NoError(t, packfile.Decode(s, b.bytes()))

	blob := object.Blob("hello world")
	id, err := object.Hash(&blob)
	require.NoError(t, err)

	objType, body, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, object.TypeBlob, objType)
	assert.Equal(t, "hello world", string(body))
}

func TestDecodeRefDelta(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	baseBlob := object.Blob("hello")
	baseCanon, err := object.Marshal(&baseBlob)
	require.NoError(t, err)
	baseID, err := s.Write(baseCanon)
	require.NoError(t, err)

	// Delta: COPY(0,5) INSERT(" world") -> "hello world".
	delta := []byte{
		0x05,       // source size = 5
		0x0B,       // target size = 11
		0x80 | 0x10, 0x05, // COPY off=0, size=5
		0x06, ' ', 'w', 'o', 'r', 'l', 'd', // INSERT " world"
	}

	var b packBuilder
	b.addRefDelta(baseID, delta)
	require.NoError(t, packfile.Decode(s, b.bytes()))

	target := object.Blob("hello world")
	targetID, err := object.Hash(&target)
	require.NoError(t, err)

	objType, body, err := s.Read(targetID)
	require.NoError(t, err)
	assert.Equal(t, object.TypeBlob, objType)
	assert.Equal(t, "hello world", string(body))
}

func TestDecodeAbortsOnMissingBase(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	var unknown object.ID
	unknown[0] = 0xFF

	var b packBuilder
	b.addRefDelta(unknown, []byte{0x00, 0x00})
	err := packfile.Decode(s, b.bytes())
	assert.ErrorIs(t, err, packfile.ErrMissingBase)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	err := packfile.Decode(s, []byte("NOPE0000000000"))
	assert.ErrorIs(t, err, packfile.ErrHeader)
}
