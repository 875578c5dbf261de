// The functions in this file tokenize a complete pkt-line buffer in
// one pass.  They do not read from an io.Reader; they operate on a
// byte slice already held in memory: the head
// advertisement and the side-band response are both read whole before
// they are framed.

package pktline

import (
	"errors"
	"fmt"
)

// ErrBadFraming is returned when a packet-line's length prefix is not
// four hexadecimal digits, or declares a length shorter than the
// prefix itself or longer than the remaining input.
var ErrBadFraming = errors.New("pktline: bad framing")

// A Token is one packet-line unit read from a byte buffer. A flush
// token (Flush true) carries no payload; any other token's Payload is
// a slice borrowed from the scanned buffer.
type Token struct {
	Flush   bool
	Payload []byte
}

// next reads one packet-line token from the head of data and returns
// it along with the unread remainder.
func next(data []byte) (tok Token, rest []byte, err error) {
	if len(data) < 4 {
		return Token{}, nil, ErrBadFraming
	}
	var length int
	if _, err := fmt.Sscanf(string(data[:4]), "%04x", &length); err != nil {
		return Token{}, nil, ErrBadFraming
	}
	if length == 0 {
		return Token{Flush: true}, data[4:], nil
	}
	if length < 4 || length > len(data) {
		return Token{}, nil, ErrBadFraming
	}
	return Token{Payload: data[4:length]}, data[length:], nil
}

// Tokenize splits data into a slice of packet-line tokens, stopping at
// the first framing error.
func Tokenize(data []byte) ([]Token, error) {
	var toks []Token
	for len(data) > 0 {
		tok, rest, err := next(data)
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		data = rest
	}
	return toks, nil
}
