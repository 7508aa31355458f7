package launchpad

import (
	"bytes"
	"errors"
)

// Decoder turns raw MIDI buffers from one Launchpad model into Messages.
// It holds no state between calls and is safe for concurrent use.
type Decoder struct {
	dialect Dialect
	table   *dialectTable
	policy  Policy
}

// Option configures a Decoder
type Option func(*Decoder)

// WithPolicy overrides the dialect's default failure policy
func WithPolicy(p Policy) Option {
	return func(d *Decoder) {
		d.policy = p
	}
}

// NewDecoder creates a decoder for the given dialect
func NewDecoder(dialect Dialect, opts ...Option) (*Decoder, error) {
	table, err := dialect.table()
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		dialect: dialect,
		table:   table,
		policy:  table.policy,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dialect returns the dialect the decoder speaks
func (d *Decoder) Dialect() Dialect {
	return d.dialect
}

// Policy returns the failure policy in effect
func (d *Decoder) Policy() Policy {
	return d.policy
}

// Decode decodes one complete MIDI message. The timestamp is accepted for
// the transport's convenience and does not affect the result.
//
// Unrecognised input returns a *DecodeError wrapping ErrInvalidMessage
// under FailFast and Unsupported under Degrade. A sysex reply with a known
// header but a broken body always returns ErrMalformedSysEx.
func (d *Decoder) Decode(timestamp uint64, data []byte) (Message, error) {
	msg, derr := d.decode(data)
	if derr == nil {
		return msg, nil
	}

	if d.policy == Degrade && errors.Is(derr.Err, ErrInvalidMessage) {
		return Unsupported{}, nil
	}

	derr.Dialect = d.dialect
	derr.Data = bytes.Clone(data)
	return nil, derr
}

func (d *Decoder) decode(data []byte) (Message, *DecodeError) {
	if d.table.dispatch == dispatchMatchFirst {
		for _, p := range d.table.matchers {
			if msg, ok, err := p(data); ok || err != nil {
				return msg, err
			}
		}
	}

	if len(data) == 3 {
		return decodeShort(d.table, data)
	}
	return decodeSysEx(d.table.sysex, data)
}
