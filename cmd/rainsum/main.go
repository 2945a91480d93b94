// Command rainsum computes rainbow digests of files or standard input and can
// extend an input's digest into an arbitrary-length keystream.
package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/codahale/rainbow"
)

func main() {
	app := &cli.App{
		Name:      "rainsum",
		Usage:     "compute rainbow digests of files or standard input",
		ArgsUsage: "[file ...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Value: 256, Usage: "digest size in bits (64, 128, or 256)"},
			&cli.StringFlag{Name: "seed", Value: "0", Usage: "seed as a number, or any other string to hash into a seed", EnvVars: []string{"RAINSUM_SEED"}},
			&cli.StringFlag{Name: "order", Value: "le", Usage: "digest byte order (le or be)"},
			&cli.StringFlag{Name: "chunk", Value: "16KB", Usage: "file read size"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to `file` instead of stdout"},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: runtime.GOMAXPROCS(0), Usage: "hash up to `n` files concurrently"},
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return nil
		},
		Action: digest,
		Commands: []*cli.Command{
			{
				Name:      "stream",
				Usage:     "emit a keystream derived from the input's digest",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "length", Aliases: []string{"l"}, Value: "1MB", Usage: "keystream length"},
				},
				Action: stream,
			},
			{
				Name:   "vectors",
				Usage:  "print digests of the standard test vector strings",
				Action: vectors,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("rainsum failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	seed  uint64
	size  rainbow.Size
	order binary.ByteOrder
	chunk int
	jobs  int
}

func parseOptions(c *cli.Context) (options, error) {
	opts := options{seed: parseSeed(c.String("seed")), jobs: max(c.Int("jobs"), 1)}

	switch c.Int("size") {
	case 64:
		opts.size = rainbow.Size64
	case 128:
		opts.size = rainbow.Size128
	case 256:
		opts.size = rainbow.Size256
	default:
		return options{}, fmt.Errorf("invalid digest size: %d", c.Int("size"))
	}

	switch c.String("order") {
	case "le":
		opts.order = binary.LittleEndian
	case "be":
		opts.order = binary.BigEndian
	default:
		return options{}, fmt.Errorf("invalid byte order: %q", c.String("order"))
	}

	chunk, err := datasize.ParseString(c.String("chunk"))
	if err != nil || chunk == 0 {
		return options{}, fmt.Errorf("invalid chunk size: %q", c.String("chunk"))
	}
	opts.chunk = int(chunk.Bytes())

	return opts, nil
}

// parseSeed interprets s as a decimal, octal, or hex number, or failing that
// hashes it into a seed.
func parseSeed(s string) uint64 {
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return n
	}
	return rainbow.Sum64([]byte(s), 0)
}

func outputWriter(c *cli.Context) (io.WriteCloser, error) {
	if path := c.String("output"); path != "" {
		return os.Create(path)
	}
	return nopCloser{os.Stdout}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func sumBytes(data []byte, opts options) ([]byte, error) {
	s := rainbow.NewKnownLength(opts.seed, uint64(len(data)), opts.size, rainbow.WithByteOrder(opts.order))
	if err := s.Absorb(data); err != nil {
		return nil, err
	}
	return s.Finalize(nil)
}

func digest(c *cli.Context) error {
	opts, err := parseOptions(c)
	if err != nil {
		return err
	}

	out, err := outputWriter(c)
	if err != nil {
		return err
	}
	defer out.Close()

	files := c.Args().Slice()
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		sum, err := sumBytes(data, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%x stdin\n", sum)
		return err
	}

	sums := make([][]byte, len(files))
	g := new(errgroup.Group)
	g.SetLimit(opts.jobs)
	for i, path := range files {
		g.Go(func() error {
			sum, err := hashFile(path, opts)
			if err != nil {
				return err
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range files {
		if _, err := fmt.Fprintf(out, "%x %s\n", sums[i], path); err != nil {
			return err
		}
	}
	return nil
}

func hashFile(path string, opts options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	s := rainbow.NewKnownLength(opts.seed, uint64(info.Size()), opts.size, rainbow.WithByteOrder(opts.order))
	buf := make([]byte, opts.chunk)
	var total uint64
	for {
		n, err := f.Read(buf)
		if n > 0 {
			total += uint64(n)
			if err := s.Absorb(buf[:n]); err != nil {
				return nil, err
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	slog.Debug("hashed file", "path", path, "bytes", total)

	return s.Finalize(nil)
}

func stream(c *cli.Context) error {
	opts, err := parseOptions(c)
	if err != nil {
		return err
	}
	if opts.order != binary.ByteOrder(binary.LittleEndian) {
		return errors.New("stream mode uses the canonical byte order only")
	}

	length, err := datasize.ParseString(c.String("length"))
	if err != nil {
		return fmt.Errorf("invalid keystream length: %q", c.String("length"))
	}

	var data []byte
	if path := c.Args().First(); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	out, err := outputWriter(c)
	if err != nil {
		return err
	}
	defer out.Close()

	slog.Debug("emitting keystream", "bytes", length.Bytes(), "size", opts.size)
	_, err = io.CopyN(out, rainbow.NewStream(opts.seed, opts.size, data), int64(length.Bytes()))
	return err
}

func vectors(c *cli.Context) error {
	opts, err := parseOptions(c)
	if err != nil {
		return err
	}

	out, err := outputWriter(c)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, tv := range testVectors {
		sum, err := sumBytes([]byte(tv), opts)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%x %q\n", sum, tv); err != nil {
			return err
		}
	}
	return nil
}

var testVectors = []string{
	"",
	"The quick brown fox jumps over the lazy dog",
	"The quick brown fox jumps over the lazy cog",
	"The quick brown fox jumps over the lazy dog.",
	"After the rainstorm comes the rainbow.",
	strings.Repeat("@", 64),
}
