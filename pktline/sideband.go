package pktline

import "bytes"

// packMagic is the four-byte signature that opens a packfile stream.
var packMagic = []byte("PACK")

// Demux extracts the raw pack byte stream out of a side-band
// multiplexed git-upload-pack response. It is DemuxProgress with no
// progress callback.
func Demux(data []byte) []byte {
	return DemuxProgress(data, nil)
}

// DemuxProgress extracts the raw pack byte stream out of a side-band
// multiplexed git-upload-pack response, the same way Demux does, but
// additionally invokes onProgress (if non-nil) with each channel-2
// payload as it's encountered. The framer itself stays pure otherwise:
// onProgress is the only I/O hook, and it sees raw payload bytes, not
// anything parsed or formatted.
//
// Phase A walks the packet lines, appending the payload of every
// channel-1 packet to the result; channel 3 (fatal error) payloads are
// dropped silently, as are unframed lines such as a leading "NAK\n". A
// flush packet is an ignorable separator, not a terminator: phase A
// keeps going past it. Phase A stops at the first framing error or at
// the end of input.
//
// Phase B is a fallback for servers that didn't multiplex the
// response at all: if phase A collected nothing, Demux scans the raw
// input for the first PACK magic and returns everything from there.
func DemuxProgress(data []byte, onProgress func([]byte)) []byte {
	var pack []byte
	rest := data
	for len(rest) > 0 {
		tok, next, err := next(rest)
		if err != nil {
			break
		}
		rest = next
		if tok.Flush || len(tok.Payload) == 0 {
			continue
		}
		switch tok.Payload[0] {
		case 1:
			pack = append(pack, tok.Payload[1:]...)
		case 2:
			if onProgress != nil {
				onProgress(tok.Payload[1:])
			}
		}
	}
	if len(pack) > 0 {
		return pack
	}
	if i := bytes.Index(data, packMagic); i >= 0 {
		return data[i:]
	}
	return nil
}
