// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command pfp computes the prefix-free parse of a FASTA or FASTQ file and the
// BWT of that parse.
//
// Example usage:
//
//	$ pfp -w 10 -p 100 --sai --docs -o out/genomes genomes.fa.gz
//	$ zcat genomes.fa.gz | pfp --codec zstd -o out/genomes -
//
// All outputs are written next to the output prefix. See package pfpfile for
// the file formats.
package main

import (
	"hash/crc32"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/cockroachdb/errors"
	"github.com/dsnet/pfbwt/internal/codec"
	"github.com/dsnet/pfbwt/pfp"
	"github.com/dsnet/pfbwt/pfpfile"
	"github.com/dsnet/pfbwt/seqio"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	flags  flagValues
	config string
	output string
	codec  string
	level  int
	verify bool
}

func newCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "pfp [flags] <fasta|->",
		Short: "Prefix-free parse a sequence collection and compute the BWT of the parse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd.Flags(), &opts.flags, opts.config)
			if err != nil {
				return err
			}
			return run(cmd.ErrOrStderr(), args[0], params, opts)
		},
		SilenceUsage: true,
	}
	fs := cmd.Flags()
	opts.flags.register(fs)
	fs.StringVar(&opts.config, "config", "", "TOML file of parameters, overridden by explicit flags")
	fs.StringVarP(&opts.output, "output", "o", "", "output prefix (default: the input path)")
	fs.StringVar(&opts.codec, "codec", "none", "output compression: "+strings.Join(codec.Names(), ", "))
	fs.IntVar(&opts.level, "level", codec.DefaultLevel, "compression level, 0 selects the codec default")
	fs.BoolVar(&opts.verify, "verify", false, "check that the parse spells the input")
	return cmd
}

func newLogger(w io.Writer, verbose bool) log.Logger {
	lvl := log.LvlWarn
	if verbose {
		lvl = log.LvlDebug
	}
	logger := log.New()
	logger.SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(w, log.TerminalFormatNoColor())))
	return logger
}

// lockedWriter serializes writes from the logger and the progress bar.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(b []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(b)
}

func run(stderr io.Writer, input string, params pfp.Params, opts options) error {
	stderr = &lockedWriter{w: stderr}
	logger := newLogger(stderr, params.Verbose)
	start := time.Now()

	prefix := opts.output
	if prefix == "" {
		if input == seqio.Stdin {
			return errors.New("an output prefix is required when reading standard input")
		}
		prefix = input
	}
	wr, err := pfpfile.NewWriter(prefix, opts.codec, opts.level)
	if err != nil {
		return err
	}

	conf := &pfp.ParserConfig{Logger: logger}
	var docs *pfpfile.DocsWriter
	if params.PrintDocs {
		if docs, err = wr.DocsStream(); err != nil {
			return err
		}
		conf.OnRecord = docs.Add
	}
	ps, err := pfp.NewParser(params, conf)
	if err != nil {
		return err
	}

	// Parse the input.
	r, err := seqio.Open(input)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", input)
	}
	var progress *mpb.Progress
	var bar *mpb.Bar
	var rd seqio.Reader = r
	if params.Verbose {
		progress = mpb.New(mpb.WithWidth(40), mpb.WithOutput(stderr))
		bar = progress.AddBar(0,
			mpb.PrependDecorators(
				decor.Name("residues: ", decor.WC{W: len("residues: "), C: decor.DindentRight}),
				decor.CurrentNoUnit("%d"),
			),
			mpb.AppendDecorators(
				decor.Elapsed(decor.ET_STYLE_GO),
			),
		)
		rd = seqio.Counter{Reader: r, Fn: func(n int) { bar.IncrBy(n) }}
	}
	n, err := ps.Parse(rd)
	r.Close()
	if bar != nil {
		bar.SetTotal(-1, true)
		progress.Wait()
	}
	if docs != nil {
		if cerr := docs.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}
	logger.Info("Parsed input", "input", input, "length", datasize.ByteSize(n).HR(), "elapsed", time.Since(start))

	if opts.verify {
		if err := verify(ps); err != nil {
			return err
		}
		logger.Info("Verified parse", "crc32", ps.Stats().CRC)
	}
	if params.GetDA && !params.PrintDocs {
		if err := wr.WriteDocs(ps.Docs()); err != nil {
			return err
		}
	}
	if params.TrimNonACGT {
		if err := wr.WriteNTab(ps.NTab()); err != nil {
			return err
		}
	}

	// Rank the dictionary.
	dw, err := wr.Dict()
	if err != nil {
		return err
	}
	err = ps.UpdateDict(dw.Add)
	if cerr := dw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if err := wr.WriteLast(ps.Last()); err != nil {
		return err
	}
	if params.GetSAI {
		if err := wr.WriteSAI(ps.SAI()); err != nil {
			return err
		}
	}
	info := pfpfile.NewInfo(input, ps)

	// Compute the BWT of the parse. The dictionary and the parse itself are
	// no longer needed once the ranks are known.
	if err := ps.GenerateParseRanks(); err != nil {
		return err
	}
	ps.ClearDict()
	ps.ClearParse()
	if err := ps.BWTOfParse(wr.WriteBWT); err != nil {
		return err
	}
	ranks, err := ps.ParseRanks()
	if err != nil {
		return err
	}
	if err := wr.WriteParse(ranks); err != nil {
		return err
	}
	if err := wr.WriteInfo(info); err != nil {
		return err
	}
	logger.Info("Done", "files", len(wr.Files()), "elapsed", time.Since(start))
	return nil
}

// verify checks that the dictionary and the parse spell the processed input.
func verify(ps *pfp.Parser) error {
	st := ps.Stats()
	text := ps.Text()
	if uint64(len(text)) != st.Length {
		return errors.Newf("verification failed: reconstructed %d characters, want %d", len(text), st.Length)
	}
	if crc := crc32.ChecksumIEEE(text); crc != st.CRC {
		return errors.Newf("verification failed: checksum 0x%08x, want 0x%08x", crc, st.CRC)
	}
	return nil
}
