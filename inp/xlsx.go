// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

// ReadLayersXlsx reads layers from a spreadsheet. The first row holds the column names
// (name, thick, vs, rho, mattype, nele, sand) in any order; the following rows hold the layers
// from the surface down to the bedrock. An empty sheet name selects the first sheet
func ReadLayersXlsx(fn, sheet string) (layers []*Layer, err error) {

	// open file
	f, err := excelize.OpenFile(fn)
	if err != nil {
		return nil, chk.Err("cannot open spreadsheet %q:\n%v", fn, err)
	}
	defer f.Close()

	// rows
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, chk.Err("cannot read sheet %q of %q:\n%v", sheet, fn, err)
	}
	if len(rows) < 2 {
		return nil, chk.Err("sheet %q of %q must have a header and at least one layer", sheet, fn)
	}

	// header
	col := make(map[string]int)
	for j, key := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(key))] = j
	}
	for _, key := range []string{"thick", "vs", "rho"} {
		if _, ok := col[key]; !ok {
			return nil, chk.Err("sheet %q of %q: column %q is missing", sheet, fn, key)
		}
	}

	// layers
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		get := func(key string) string {
			if j, ok := col[key]; ok && j < len(row) {
				return strings.TrimSpace(row[j])
			}
			return ""
		}
		num := func(key string) (float64, error) {
			s := get(key)
			if s == "" {
				return 0, nil
			}
			v, e := strconv.ParseFloat(s, 64)
			if e != nil {
				return 0, chk.Err("sheet %q row %d: cannot parse %s = %q", sheet, i+1, key, s)
			}
			return v, nil
		}
		var lay Layer
		lay.Name = get("name")
		lay.MatType = get("mattype")
		lay.Sand = get("sand")
		if lay.Thick, err = num("thick"); err != nil {
			return
		}
		if lay.Vs, err = num("vs"); err != nil {
			return
		}
		if lay.Rho, err = num("rho"); err != nil {
			return
		}
		nele, e := num("nele")
		if e != nil {
			return nil, e
		}
		lay.NumEle = int(nele)
		layers = append(layers, &lay)
	}
	return
}

// WriteLayersXlsx writes layers to a new spreadsheet
func WriteLayersXlsx(fn string, layers []*Layer) (err error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := []interface{}{"name", "thick", "vs", "rho", "mattype", "nele", "sand"}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return chk.Err("cannot write header:\n%v", err)
	}
	for i, lay := range layers {
		cell, e := excelize.CoordinatesToCellName(1, i+2)
		if e != nil {
			return e
		}
		row := []interface{}{lay.Name, lay.Thick, lay.Vs, lay.Rho, lay.MatType, lay.NumEle, lay.Sand}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return chk.Err("cannot write layer %d:\n%v", i, err)
		}
	}
	if err = f.SaveAs(fn); err != nil {
		return chk.Err("cannot save spreadsheet %q:\n%v", fn, err)
	}
	return
}
