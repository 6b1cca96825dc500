// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dsnet/golib/strconv"
	"github.com/dsnet/pfbwt/pfp"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// flagValues holds the raw values of the parameter flags.
type flagValues struct {
	window      int
	modulus     string
	hash        string
	sai         bool
	docs        bool
	trimNonACGT bool
	nonACGTToA  bool
	printDocs   bool
	verbose     bool
}

func (fv *flagValues) register(fs *pflag.FlagSet) {
	def := pfp.DefaultParams()
	fs.IntVarP(&fv.window, "window", "w", def.W, "size of the rolling hash window (at most 32)")
	fs.StringVarP(&fv.modulus, "modulus", "p", fmt.Sprint(def.P), "phrase boundary modulus, accepts prefixes such as 1k or 1e3")
	fs.StringVar(&fv.hash, "hash", def.Hash, "rolling hash family: kr or cyclic")
	fs.BoolVar(&fv.sai, "sai", false, "write the text offset of every phrase boundary")
	fs.BoolVar(&fv.docs, "docs", false, "track the start offset of every record")
	fs.BoolVar(&fv.trimNonACGT, "trim-non-acgt", false, "drop runs of non-ACGT characters and write them to the run table")
	fs.BoolVar(&fv.nonACGTToA, "non-acgt-to-a", false, "replace non-ACGT characters with A")
	fs.BoolVar(&fv.printDocs, "print-docs", false, "write the name and start offset of every record as it is read")
	fs.BoolVarP(&fv.verbose, "verbose", "v", false, "log progress")
}

// loadParams reads the parameters from the TOML file at path.
// Parameters missing from the file keep their defaults.
func loadParams(path string) (pfp.Params, error) {
	params := pfp.DefaultParams()
	b, err := os.ReadFile(path)
	if err != nil {
		return params, errors.Wrap(err, "failed to read config")
	}
	if err := toml.Unmarshal(b, &params); err != nil {
		return params, errors.Wrapf(err, "invalid config %s", path)
	}
	return params, nil
}

// parseModulus parses a positive integer with an optional SI or IEC prefix.
func parseModulus(s string) (uint64, error) {
	f, err := strconv.ParsePrefix(s, strconv.AutoParse)
	if err != nil || f < 1 || f != math.Trunc(f) || f > math.MaxUint64 {
		return 0, errors.Newf("invalid modulus %q", s)
	}
	return uint64(f), nil
}

// resolveParams layers the explicitly set flags over the config file, which
// is itself layered over the defaults.
func resolveParams(fs *pflag.FlagSet, fv *flagValues, config string) (pfp.Params, error) {
	params := pfp.DefaultParams()
	if config != "" {
		var err error
		if params, err = loadParams(config); err != nil {
			return params, err
		}
	}
	if fs.Changed("window") {
		params.W = fv.window
	}
	if fs.Changed("modulus") {
		p, err := parseModulus(fv.modulus)
		if err != nil {
			return params, err
		}
		params.P = p
	}
	if fs.Changed("hash") {
		params.Hash = fv.hash
	}
	for _, f := range []struct {
		name string
		dst  *bool
		val  bool
	}{
		{"sai", &params.GetSAI, fv.sai},
		{"docs", &params.GetDA, fv.docs},
		{"trim-non-acgt", &params.TrimNonACGT, fv.trimNonACGT},
		{"non-acgt-to-a", &params.NonACGTToA, fv.nonACGTToA},
		{"print-docs", &params.PrintDocs, fv.printDocs},
		{"verbose", &params.Verbose, fv.verbose},
	} {
		if fs.Changed(f.name) {
			*f.dst = f.val
		}
	}
	return params, params.Validate()
}
