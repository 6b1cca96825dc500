// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package rollhash implements hashes over a sliding window of bytes.
//
// A Hasher is fed one byte at a time and always reports the hash of the last
// w bytes fed. Before w bytes have been fed, the hash covers only the bytes
// fed so far. Callers that need a full window must count the bytes they feed
// themselves.
package rollhash

import "fmt"

// Hasher maintains the hash of a sliding window of bytes.
type Hasher interface {
	// Update slides the window forward by one byte.
	Update(c byte)

	// Value reports the hash of the current window.
	Value() uint64

	// Reset empties the window.
	Reset()
}

// Func creates a Hasher for a window of w bytes.
type Func func(w int) Hasher

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "rollhash: " + string(e) }

var funcs = map[string]Func{
	"kr":     func(w int) Hasher { return NewKarpRabin(w) },
	"cyclic": func(w int) Hasher { return NewCyclic(w) },
}

// Lookup returns the constructor for the named hash family.
func Lookup(name string) (Func, error) {
	fn, ok := funcs[name]
	if !ok {
		return nil, Error(fmt.Sprintf("unknown hash family %q", name))
	}
	return fn, nil
}

// New creates a Hasher of the named family over a window of w bytes.
func New(name string, w int) (Hasher, error) {
	if w <= 0 {
		return nil, Error("window size must be positive")
	}
	fn, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return fn(w), nil
}

// Names lists the registered hash families.
func Names() []string {
	return []string{"kr", "cyclic"}
}
