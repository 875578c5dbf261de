package pktline

import "errors"

// ErrNoHead is returned by ExtractHead when the advertisement ends
// before a ref payload is found after the first flush.
var ErrNoHead = errors.New("pktline: no head in advertisement")

// ExtractHead scans a ref advertisement for the default branch's
// object ID. It walks packet lines until the first flush, then reads
// the 40-character hex ID at the start of the next payload.
func ExtractHead(data []byte) (string, error) {
	seenFlush := false
	for len(data) > 0 {
		tok, rest, err := next(data)
		if err != nil {
			return "", err
		}
		data = rest
		if tok.Flush {
			seenFlush = true
			continue
		}
		if !seenFlush {
			continue
		}
		if len(tok.Payload) < 40 {
			return "", ErrNoHead
		}
		return string(tok.Payload[:40]), nil
	}
	return "", ErrNoHead
}
