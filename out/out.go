// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements recorders and reports of site-response results
package out

import (
	"bytes"
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Recorder defines objects that save a set of values at each output time
type Recorder interface {
	Open(keys []string) (err error)               // prepares the recorder; keys name each column
	Record(t float64, vals []float64) (err error) // saves values at time t; len(vals) == len(keys)
	Close() (err error)                           // flushes and releases resources
}

// Memory keeps all records in memory
type Memory struct {
	Name string      // name of record; e.g. "surface.disp"
	Keys []string    // keys of columns
	T    []float64   // output times
	Vals [][]float64 // [nkeys][ntimes] values
}

// NewMemory returns a new in-memory recorder
func NewMemory(name string) *Memory {
	return &Memory{Name: name}
}

// Open prepares the recorder and erases previous records
func (o *Memory) Open(keys []string) (err error) {
	o.Keys = keys
	o.T = o.T[:0]
	o.Vals = make([][]float64, len(keys))
	return
}

// Record saves values at time t
func (o *Memory) Record(t float64, vals []float64) (err error) {
	if len(vals) != len(o.Keys) {
		return chk.Err("recorder %q: number of values (%d) must be equal to the number of keys (%d)", o.Name, len(vals), len(o.Keys))
	}
	o.T = append(o.T, t)
	for i, v := range vals {
		o.Vals[i] = append(o.Vals[i], v)
	}
	return
}

// Close does nothing
func (o *Memory) Close() (err error) { return }

// Get returns the history of key; nil if not found
func (o *Memory) Get(key string) []float64 {
	for i, k := range o.Keys {
		if k == key {
			return o.Vals[i]
		}
	}
	return nil
}

// Last returns the last recorded values
func (o *Memory) Last() (vals []float64) {
	n := len(o.T)
	if n == 0 {
		return
	}
	vals = make([]float64, len(o.Keys))
	for i := range o.Keys {
		vals[i] = o.Vals[i][n-1]
	}
	return
}

// Peak returns the maximum absolute value of key and the time when it happens
func (o *Memory) Peak(key string) (tpeak, vpeak float64) {
	for i, v := range o.Get(key) {
		if math.Abs(v) > math.Abs(vpeak) {
			tpeak, vpeak = o.T[i], v
		}
	}
	return
}

// Text writes records to a text file with one line per output time: t v0 v1 ...
//  Note: the file is written when Close is called
type Text struct {
	Dir  string       // output directory
	Fn   string       // filename; e.g. "surface.acc"
	Head bool         // write a header line with "t" and keys
	buf  bytes.Buffer // contents
	nkey int          // number of keys
}

// NewText returns a new text recorder writing to dir/fn
func NewText(dir, fn string) *Text {
	return &Text{Dir: dir, Fn: fn}
}

// Path returns the full path of file
func (o *Text) Path() string { return filepath.Join(o.Dir, o.Fn) }

// Open prepares the buffer
func (o *Text) Open(keys []string) (err error) {
	o.buf.Reset()
	o.nkey = len(keys)
	if o.Head {
		io.Ff(&o.buf, "%23s", "t")
		for _, key := range keys {
			io.Ff(&o.buf, " %23s", key)
		}
		io.Ff(&o.buf, "\n")
	}
	return
}

// Record appends one line
func (o *Text) Record(t float64, vals []float64) (err error) {
	if len(vals) != o.nkey {
		return chk.Err("recorder %q: number of values (%d) must be equal to the number of keys (%d)", o.Fn, len(vals), o.nkey)
	}
	io.Ff(&o.buf, "%23.15e", t)
	for _, v := range vals {
		io.Ff(&o.buf, " %23.15e", v)
	}
	io.Ff(&o.buf, "\n")
	return
}

// Close writes the file
func (o *Text) Close() (err error) {
	io.WriteFileVD(o.Dir, o.Fn, &o.buf)
	return
}

// Tee sends records to many recorders
type Tee []Recorder

// Open opens all recorders
func (o Tee) Open(keys []string) (err error) {
	for _, r := range o {
		if err = r.Open(keys); err != nil {
			return
		}
	}
	return
}

// Record records into all recorders
func (o Tee) Record(t float64, vals []float64) (err error) {
	for _, r := range o {
		if err = r.Record(t, vals); err != nil {
			return
		}
	}
	return
}

// Close closes all recorders; the first error is returned
func (o Tee) Close() (err error) {
	for _, r := range o {
		if e := r.Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}
