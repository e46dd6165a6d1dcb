// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"strconv"

	"github.com/cpmech/gosl/io"
	"github.com/joho/godotenv"
)

// environment keys
const (
	EnvDirOut  = "SITERESP_DIROUT"  // output directory
	EnvVerbose = "SITERESP_VERBOSE" // show messages
	EnvMaxFreq = "SITERESP_MAXFREQ" // maximum frequency of interest
	EnvDim     = "SITERESP_DIM"     // model dimension
)

// LoadEnv loads environment variables from .env files. Missing files are ignored
func LoadEnv(filenames ...string) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, fn := range filenames {
		if _, err := os.Stat(fn); err != nil {
			continue
		}
		if err := godotenv.Load(fn); err != nil {
			io.PfRed("cannot load environment file %q: %v\n", fn, err)
		}
	}
}

// EnvBool returns a boolean flag set in the environment; dflt if absent or invalid
func EnvBool(key string, dflt bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return dflt
}

// ApplyEnv overrides simulation data with values from the environment
func ApplyEnv(o *Simulation) {
	if val := os.Getenv(EnvDirOut); val != "" {
		o.Data.DirOut = val
	}
	if val := os.Getenv(EnvMaxFreq); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 {
			o.Mesh.MaxFreq = f
		}
	}
	if val := os.Getenv(EnvDim); val != "" {
		o.Data.Dim = val
	}
}
