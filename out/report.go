// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/phpdave11/gofpdf"
)

// Report holds the summary of a run
type Report struct {
	Title   string      // title; e.g. "Site response: col2d"
	Desc    string      // description of simulation
	Items   [][2]string // label/value pairs; e.g. {"number of elements", "20"}
	Notes   string      // [optional] free text; e.g. layering table
	Records []*Memory   // records whose peak values are listed
}

// Add adds a label/value pair
func (o *Report) Add(label, format string, args ...interface{}) {
	o.Items = append(o.Items, [2]string{label, io.Sf(format, args...)})
}

// WritePdf writes the report to a pdf file
func (o *Report) WritePdf(fn string) (err error) {

	// header
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	title := o.Title
	if title == "" {
		title = "Site response analysis"
	}
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if o.Desc != "" {
		pdf.MultiCell(0, 6, o.Desc, "", "L", false)
	}
	pdf.Cell(0, 6, io.Sf("Date: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	// summary
	for _, item := range o.Items {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(70, 6, item[0])
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, item[1])
		pdf.Ln(6)
	}

	// peaks
	if len(o.Records) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Peak values")
		pdf.Ln(9)
		pdf.SetFont("Courier", "", 10)
		for _, rec := range o.Records {
			for _, key := range rec.Keys {
				t, v := rec.Peak(key)
				pdf.Cell(0, 5, io.Sf("%-16s %-8s %13.6e  at t = %g", rec.Name, key, v, t))
				pdf.Ln(5)
			}
		}
	}

	// notes
	if o.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Courier", "", 9)
		pdf.MultiCell(0, 4.5, o.Notes, "", "L", false)
	}

	if err = pdf.OutputFileAndClose(fn); err != nil {
		return chk.Err("cannot write report %q:\n%v", fn, err)
	}
	return
}
