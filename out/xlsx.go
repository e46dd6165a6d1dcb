// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

// SaveXlsx saves in-memory records to a spreadsheet; one sheet per record.
// Each sheet has a header row ("t" followed by the keys) and one row per output time
func SaveXlsx(fn string, recs ...*Memory) (err error) {
	if len(recs) == 0 {
		return chk.Err("there are no records to be saved in %q", fn)
	}
	f := excelize.NewFile()
	defer f.Close()
	first := f.GetSheetName(0)
	for k, rec := range recs {
		sheet := sheetName(rec.Name, k)
		if k == 0 {
			if err = f.SetSheetName(first, sheet); err != nil {
				return chk.Err("cannot rename sheet:\n%v", err)
			}
		} else {
			if _, err = f.NewSheet(sheet); err != nil {
				return chk.Err("cannot create sheet %q:\n%v", sheet, err)
			}
		}
		header := []interface{}{"t"}
		for _, key := range rec.Keys {
			header = append(header, key)
		}
		if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
			return chk.Err("cannot write header of %q:\n%v", sheet, err)
		}
		for i, t := range rec.T {
			cell, e := excelize.CoordinatesToCellName(1, i+2)
			if e != nil {
				return e
			}
			row := make([]interface{}, 1+len(rec.Keys))
			row[0] = t
			for j := range rec.Keys {
				row[1+j] = rec.Vals[j][i]
			}
			if err = f.SetSheetRow(sheet, cell, &row); err != nil {
				return chk.Err("cannot write row %d of %q:\n%v", i, sheet, err)
			}
		}
	}
	if err = f.SaveAs(fn); err != nil {
		return chk.Err("cannot save spreadsheet %q:\n%v", fn, err)
	}
	return
}

// sheetName returns a valid sheet name; excel limits names to 31 characters
func sheetName(name string, idx int) string {
	if name == "" {
		return "record" + string(rune('A'+idx%26))
	}
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
