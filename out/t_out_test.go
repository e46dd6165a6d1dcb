// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

func Test_memory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("memory01")

	rec := NewMemory("surface.vel")
	err := rec.Open([]string{"ux", "uy"})
	if err != nil {
		tst.Errorf("Open failed:\n%v", err)
		return
	}
	rec.Record(0.0, []float64{0, 0})
	rec.Record(0.1, []float64{0.5, -1})
	rec.Record(0.2, []float64{-2, 0.1})
	err = rec.Record(0.3, []float64{1})
	if err == nil {
		tst.Errorf("Record with wrong number of values should have failed")
		return
	}

	chk.Array(tst, "T", 1e-15, rec.T, []float64{0, 0.1, 0.2})
	chk.Array(tst, "ux", 1e-15, rec.Get("ux"), []float64{0, 0.5, -2})
	chk.Array(tst, "last", 1e-15, rec.Last(), []float64{-2, 0.1})
	if rec.Get("uz") != nil {
		tst.Errorf("Get should return nil for unknown key")
	}
	t, v := rec.Peak("uy")
	chk.Float64(tst, "tpeak", 1e-15, t, 0.1)
	chk.Float64(tst, "vpeak", 1e-15, v, -1)
}

func Test_text01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("text01")

	dir := tst.TempDir()
	txt := NewText(dir, "base.acc")
	mem := NewMemory("base.acc")
	tee := Tee{txt, mem}
	tee.Open([]string{"ux"})
	for i := 0; i < 4; i++ {
		tee.Record(float64(i)*0.01, []float64{float64(i * i)})
	}
	err := tee.Close()
	if err != nil {
		tst.Errorf("Close failed:\n%v", err)
		return
	}

	b, err := os.ReadFile(txt.Path())
	if err != nil {
		tst.Errorf("cannot read file:\n%v", err)
		return
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	chk.IntAssert(len(lines), 4)
	chk.IntAssert(len(strings.Fields(lines[3])), 2)
	chk.Array(tst, "mem", 1e-15, mem.Get("ux"), []float64{0, 1, 4, 9})
}

func Test_xlsx01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xlsx01")

	a := NewMemory("surface.disp")
	a.Open([]string{"ux", "uy"})
	a.Record(0, []float64{1, 2})
	a.Record(1, []float64{3, 4})
	b := NewMemory("base.vel")
	b.Open([]string{"ux"})
	b.Record(0, []float64{-1})

	fn := filepath.Join(tst.TempDir(), "results.xlsx")
	err := SaveXlsx(fn, a, b)
	if err != nil {
		tst.Errorf("SaveXlsx failed:\n%v", err)
		return
	}

	f, err := excelize.OpenFile(fn)
	if err != nil {
		tst.Errorf("cannot open spreadsheet:\n%v", err)
		return
	}
	defer f.Close()
	chk.Strings(tst, "sheets", f.GetSheetList(), []string{"surface.disp", "base.vel"})
	rows, err := f.GetRows("surface.disp")
	if err != nil {
		tst.Errorf("GetRows failed:\n%v", err)
		return
	}
	chk.Strings(tst, "header", rows[0], []string{"t", "ux", "uy"})
	chk.Strings(tst, "row2", rows[2], []string{"1", "3", "4"})
}

func Test_report01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report01")

	rec := NewMemory("surface.acc")
	rec.Open([]string{"ux"})
	rec.Record(0, []float64{0.1})
	rec.Record(0.01, []float64{-0.3})

	rpt := Report{Title: "test", Desc: "two-layer column", Notes: "layer  thick\ntop    2.0", Records: []*Memory{rec}}
	rpt.Add("number of elements", "%d", 20)
	fn := filepath.Join(tst.TempDir(), "report.pdf")
	err := rpt.WritePdf(fn)
	if err != nil {
		tst.Errorf("WritePdf failed:\n%v", err)
		return
	}
	info, err := os.Stat(fn)
	if err != nil {
		tst.Errorf("cannot stat report:\n%v", err)
		return
	}
	if info.Size() == 0 {
		tst.Errorf("report is empty")
	}
}
