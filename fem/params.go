// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/ele"
)

// Parameter binds a behaviour knob of one element (and its material) to a scalar value
type Parameter struct {
	Tag    int                // parameter tag; above all element tags
	Name   string             // knob name; e.g. "materialState", "FirstCall", "poissonRatio", "hPerm"
	Elem   int                // element tag
	MatTag int                // material tag of element
	Value  float64            // last value set
	target ele.WithParameters // element receiving the value
}

// AddParameter creates a parameter bound to element etag; the value is not applied
func (o *Domain) AddParameter(name string, etag int) (p *Parameter, err error) {
	e, ok := o.Tag2elem[etag]
	if !ok {
		return nil, chk.Err("cannot create parameter %q: element %d does not exist", name, etag)
	}
	target, ok := e.(ele.WithParameters)
	if !ok {
		return nil, chk.Err("cannot create parameter %q: element %d does not accept parameters", name, etag)
	}
	p = &Parameter{
		Tag:    o.Tags.Next(TagParam),
		Name:   name,
		Elem:   etag,
		MatTag: o.MatOf[etag],
		target: target,
	}
	o.Params = append(o.Params, p)
	return
}

// UpdateParameter sets a new value. It fails while a solution step is in progress
func (o *Domain) UpdateParameter(p *Parameter, value float64) (err error) {
	if o.busy {
		return chk.Err("parameter %d (%s) cannot be updated during a solution step", p.Tag, p.Name)
	}
	err = p.target.SetParameter(p.Name, value)
	if err != nil {
		return chk.Err("cannot set parameter %d (%s) of element %d:\n%v", p.Tag, p.Name, p.Elem, err)
	}
	p.Value = value
	return
}

// SetParams creates (if needed) and sets one parameter named name for each element in etags
func (o *Domain) SetParams(name string, value float64, etags []int) (err error) {
	for _, etag := range etags {
		p := o.FindParameter(name, etag)
		if p == nil {
			p, err = o.AddParameter(name, etag)
			if err != nil {
				return
			}
		}
		err = o.UpdateParameter(p, value)
		if err != nil {
			return
		}
	}
	return
}

// FindParameter returns the parameter bound to element etag; nil if not found
func (o *Domain) FindParameter(name string, etag int) *Parameter {
	for _, p := range o.Params {
		if p.Name == name && p.Elem == etag {
			return p
		}
	}
	return nil
}

// ParamValues reads back the current values of all parameters named name. The values are
// obtained from the elements, not from the cache in Parameter
func (o *Domain) ParamValues(name string) (vals []float64, err error) {
	for _, p := range o.Params {
		if p.Name != name {
			continue
		}
		v, e := p.target.GetParameter(name)
		if e != nil {
			return nil, chk.Err("cannot get parameter %d (%s) of element %d:\n%v", p.Tag, p.Name, p.Elem, e)
		}
		vals = append(vals, v)
	}
	return
}
