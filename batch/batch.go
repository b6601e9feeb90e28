// Package batch converts every supported pattern file below a directory
// into one target format, on a pool of workers.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/esimov/tambour"
	"github.com/esimov/tambour/format"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// MaxWorkers caps the number of concurrently running conversions.
const MaxWorkers = 20

// Converter describes a directory conversion. Each file is read into its
// own Pattern, so Transform may mutate it freely.
type Converter struct {
	Src, Dst string
	// Target is the output format name, for example "dst".
	Target string
	// Workers is the number of concurrent conversions. Values outside
	// 1..MaxWorkers use the number of CPUs.
	Workers int
	// Overwrite replaces existing output files, otherwise they are skipped.
	Overwrite bool
	// Compress wraps the output files in zstd.
	Compress bool

	// Transform, when set, is applied to every pattern before writing.
	Transform func(*tambour.Pattern) error
	// OnResult, when set, is called from the collecting goroutine for
	// every file as soon as it is done.
	OnResult func(Result)
}

// Result is the outcome of one file.
type Result struct {
	Src, Dst string
	Stitches int
	Skipped  bool
	Err      error
}

// Results collects the outcome of a run, sorted by source path.
type Results struct {
	Items     []Result
	Converted int
	Skipped   int
	Failed    int
}

func (r *Results) add(res Result) {
	r.Items = append(r.Items, res)
	switch {
	case res.Err != nil:
		r.Failed++
	case res.Skipped:
		r.Skipped++
	default:
		r.Converted++
	}
}

// Err returns the first failure in source path order, or nil.
func (r *Results) Err() error {
	for _, res := range r.Items {
		if res.Err != nil {
			return errors.Wrap(res.Err, res.Src)
		}
	}
	return nil
}

// Run walks Src and converts every readable pattern file into Dst, keeping
// the relative directory layout. Failures of single files are recorded in
// the results and do not stop the run; walking errors and cancellation do.
func (c *Converter) Run(ctx context.Context) (*Results, error) {
	fi, err := os.Stat(c.Src)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("batch: %s is not a directory", c.Src)
	}
	target, err := format.Lookup(c.Target)
	if err != nil {
		return nil, err
	}
	if !target.CanWrite() || len(target.Extensions) == 0 {
		return nil, errors.Wrapf(format.ErrUnsupportedFormat, "%s cannot be written", target.Name)
	}
	if err := os.MkdirAll(c.Dst, 0755); err != nil {
		return nil, err
	}

	workers := c.Workers
	if workers <= 0 || workers > MaxWorkers {
		workers = runtime.NumCPU()
	}

	eg, ctx := errgroup.WithContext(ctx)
	paths := make(chan string)
	results := make(chan Result)

	eg.Go(func() error {
		defer close(paths)
		return c.walkDir(ctx, paths)
	})

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			defer wg.Done()
			return c.consumer(ctx, target, paths, results)
		})
	}
	go func() {
		defer close(results)
		wg.Wait()
	}()

	res := &Results{}
	for r := range results {
		res.add(r)
		if c.OnResult != nil {
			c.OnResult(r)
		}
	}
	slices.SortFunc(res.Items, func(a, b Result) bool {
		return a.Src < b.Src
	})
	if err := eg.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// consumer converts the files received on paths until the channel is
// closed or the context is done.
func (c *Converter) consumer(
	ctx context.Context,
	target *format.Format,
	paths <-chan string,
	results chan<- Result,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case src, ok := <-paths:
			if !ok {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case results <- c.convert(src, target):
			}
		}
	}
}

func (c *Converter) convert(src string, target *format.Format) Result {
	res := Result{Src: src}

	rel, err := filepath.Rel(c.Src, src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Dst = filepath.Join(c.Dst, outputName(rel, target.Extensions[0], c.Compress))

	if !c.Overwrite {
		if _, err := os.Stat(res.Dst); err == nil {
			res.Skipped = true
			return res
		}
	}

	p, err := format.ReadFile(src)
	if err != nil {
		res.Err = err
		return res
	}
	if c.Transform != nil {
		if err := c.Transform(p); err != nil {
			res.Err = err
			return res
		}
	}
	if err := format.WriteFile(res.Dst, p); err != nil {
		res.Err = err
		return res
	}
	res.Stitches = p.CountStitches()
	return res
}

// outputName replaces the format extension of rel, including a ".zst"
// suffix, with ext.
func outputName(rel, ext string, compress bool) string {
	if format.IsZstd(rel) {
		rel = rel[:len(rel)-len(format.ZstdExt)]
	}
	name := strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
	if compress {
		name += format.ZstdExt
	}
	return name
}

// walkDir sends the path of every readable pattern file below Src. The
// output directory is skipped when it lies inside Src.
func (c *Converter) walkDir(ctx context.Context, paths chan<- string) error {
	dst, _ := filepath.Abs(c.Dst)

	return filepath.WalkDir(c.Src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == dst && path != c.Src {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if f, err := format.ForPath(path); err != nil || !f.CanRead() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case paths <- path:
		}
		return nil
	})
}
