package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/tambour"
	"github.com/esimov/tambour/batch"
	"github.com/esimov/tambour/format"
	_ "github.com/esimov/tambour/format/dst"
	_ "github.com/esimov/tambour/format/exp"
	_ "github.com/esimov/tambour/format/tsc"
	"github.com/esimov/tambour/imop"
	"github.com/esimov/tambour/render"
	"github.com/esimov/tambour/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const HelpBanner = `
┌┬┐┌─┐┌┬┐┌┐ ┌─┐┬ ┬┬─┐
 │ ├─┤││││├┴┐│ ││ │├┬┘
 ┴ ┴ ┴┴ ┴└─┘└─┘└─┘┴└─

Embroidery pattern converter.
    Version: %s

Supported formats: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source file, directory or URL")
	destination = flag.String("out", "", "Destination file or directory")
	from        = flag.String("from", "", "Source format name, required when reading from stdin")
	to          = flag.String("to", "", "Destination format name, required for stdout and directories")
	scale       = flag.Float64("scale", 1, "Scale factor")
	rotate      = flag.Float64("rotate", 0, "Rotation angle in degrees")
	center      = flag.Bool("center", false, "Move the design center to the origin")
	preview     = flag.String("png", "", "Write a preview image (png, jpg or bmp)")
	previewSize = flag.Int("size", 0, "Maximum preview size in pixels")
	blendMode   = flag.String("blend", "", "Preview blend mode: normal, darken, lighten, multiply, screen or overlay")
	paletteName = flag.String("palette", "", "Map the threads to a chart (hus, shv, sew) or to an RGB palette file")
	compress    = flag.Bool("zst", false, "Compress the batch output with zstd")
	overwrite   = flag.Bool("force", false, "Overwrite existing files in batch mode")
	info        = flag.Bool("info", false, "Print the pattern statistics")
	speed       = flag.Float64("speed", tambour.DefaultSpeed, "Machine speed in stitches per minute")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

// spinner used to instantiate and call the progress indicator.
var spinner *utils.Spinner

// chart is the palette resolved from the -palette flag.
var chart *tambour.Palette

// tmpFile holds the downloaded source, removed on exit.
var tmpFile string

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version, strings.Join(format.Extensions(), " "))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *destination == "" && *preview == "" && !*info {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide an output file, a preview image or the -info flag!", utils.ErrorMessage))
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ TAMBOUR", utils.StatusMessage),
		utils.DecorateText("is converting the pattern...", utils.DefaultMessage))
	spinner = utils.NewSpinner(os.Stderr, spinnerText, time.Millisecond*100, true)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Restore the cursor visibility when the process gets interrupted.
	go func() {
		<-ctx.Done()
		spinner.RestoreCursor()
	}()

	src := *source
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadFile(ctx, src)
		if err != nil {
			fatal("Failed to download the source pattern: %v", err)
		}
		f.Close()
		tmpFile = f.Name()
		defer cleanup()
		src = f.Name()
	}

	if *paletteName != "" {
		var err error
		if chart, err = resolvePalette(*paletteName); err != nil {
			fatal("Failed to load the palette: %v", err)
		}
	}

	now := time.Now()

	var fi os.FileInfo
	if src != pipeName {
		var err error
		if fi, err = os.Stat(src); err != nil {
			fatal("Failed to load the source pattern: %v", err)
		}
	}

	if fi != nil && fi.IsDir() {
		if err := convertDir(ctx, src); err != nil {
			fatal("Batch conversion failed: %v", err)
		}
	} else {
		if err := convertFile(src); err != nil {
			fatal("Error converting the pattern: %v", err)
		}
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// transform applies the geometry flags to the pattern.
func transform(p *tambour.Pattern) error {
	if *scale <= 0 {
		return errors.Errorf("invalid scale factor %v", *scale)
	}
	if *center {
		p.MoveCenterToOrigin()
	}
	if *scale != 1 || *rotate != 0 {
		m := tambour.NewMatrix().
			PostScaleUniform(*scale, 0, 0).
			PostRotate(*rotate, 0, 0)
		p.Transform(m)
	}
	if chart != nil {
		chart.Quantize(p)
	}
	return nil
}

// resolvePalette looks name up among the built-in charts first and falls
// back to reading it as an RGB palette file.
func resolvePalette(name string) (*tambour.Palette, error) {
	if pl, err := tambour.PaletteByName(name); err == nil {
		return pl, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, errors.Errorf("%q is neither a known chart (%s) nor a palette file",
			name, strings.Join(tambour.Palettes(), ", "))
	}
	return tambour.LoadPalette(name)
}

// convertDir converts every pattern below dir into the -out directory.
func convertDir(ctx context.Context, dir string) error {
	if *destination == "" || *destination == pipeName {
		return errors.New("batch mode needs an output directory")
	}
	if *to == "" {
		return errors.New("batch mode needs a target format, use -to")
	}
	c := &batch.Converter{
		Src:       dir,
		Dst:       *destination,
		Target:    *to,
		Workers:   *workers,
		Overwrite: *overwrite,
		Compress:  *compress,
		Transform: transform,
		OnResult:  printStatus,
	}
	res, err := c.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\n%s converted, %s skipped, %s failed\n",
		utils.DecorateText(fmt.Sprint(res.Converted), utils.SuccessMessage),
		utils.DecorateText(fmt.Sprint(res.Skipped), utils.StatusMessage),
		utils.DecorateText(fmt.Sprint(res.Failed), utils.ErrorMessage),
	)
	return res.Err()
}

// convertFile converts a single pattern, read from a file or stdin.
func convertFile(in string) error {
	spinner.Start()
	p, err := readPattern(in)
	if err == nil {
		err = transform(p)
	}
	if err == nil && *destination != "" {
		err = writePattern(*destination, p)
	}
	if err == nil && *preview != "" {
		opts := render.DefaultOptions()
		opts.MaxSize = *previewSize
		if opts.Blend, err = imop.ParseMode(*blendMode); err == nil {
			err = render.Save(*preview, p, opts)
		}
	}
	if err == nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ TAMBOUR", utils.StatusMessage),
			utils.DecorateText("is converting the pattern... ✔", utils.DefaultMessage))
	}
	spinner.Stop()
	if err != nil {
		return err
	}

	if *destination != "" && *destination != pipeName {
		fmt.Fprintf(os.Stderr, "The pattern has been saved as: %s\n",
			utils.DecorateText(filepath.Base(*destination), utils.SuccessMessage))
	}
	if *info {
		printInfo(os.Stderr, p)
	}
	return nil
}

func readPattern(in string) (*tambour.Pattern, error) {
	if in != pipeName {
		return format.ReadFile(in)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("`-` should be used with a pipe for stdin")
	}
	f, compressed, err := pipeFormat(*from)
	if err != nil {
		return nil, err
	}
	return format.ReadFrom(os.Stdin, f, compressed)
}

func writePattern(out string, p *tambour.Pattern) error {
	if out != pipeName {
		return format.WriteFile(out, p)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("`-` should be used with a pipe for stdout")
	}
	f, compressed, err := pipeFormat(*to)
	if err != nil {
		return err
	}
	return format.WriteTo(os.Stdout, f, p, compressed)
}

// pipeFormat resolves a format name, which may carry a ".zst" suffix
// ("dst.zst"), for stdin and stdout.
func pipeFormat(name string) (*format.Format, bool, error) {
	if name == "" {
		return nil, false, errors.New("the format of a pipe must be given with -from or -to")
	}
	compressed := format.IsZstd(name)
	f, err := format.Lookup(strings.TrimSuffix(name, format.ZstdExt))
	return f, compressed, err
}

// printStatus displays the outcome of one file in batch mode.
func printStatus(r batch.Result) {
	switch {
	case r.Err != nil:
		fmt.Fprintf(os.Stderr, "%s %s\n\t%s\n",
			utils.DecorateText("✘", utils.ErrorMessage), r.Src,
			utils.DecorateText(r.Err.Error(), utils.DefaultMessage))
	case r.Skipped:
		fmt.Fprintf(os.Stderr, "%s %s exists\n",
			utils.DecorateText("-", utils.StatusMessage), r.Dst)
	default:
		fmt.Fprintf(os.Stderr, "%s %s (%d stitches)\n",
			utils.DecorateText("✔", utils.SuccessMessage), r.Dst, r.Stitches)
	}
}

func printInfo(w io.Writer, p *tambour.Pattern) {
	st := p.Statistics(*speed)
	if t := p.Title(); t != "" {
		fmt.Fprintf(w, "\nTitle:         %s\n", t)
	}
	fmt.Fprintf(w, "Size:          %.1f x %.1f mm\n", st.WidthMM, st.HeightMM)
	fmt.Fprintf(w, "Stitches:      %d\n", st.Stitches)
	fmt.Fprintf(w, "Jumps:         %d\n", st.Jumps)
	fmt.Fprintf(w, "Trims:         %d\n", st.Trims)
	fmt.Fprintf(w, "Color changes: %d\n", st.ColorChanges)
	fmt.Fprintf(w, "Thread length: %s\n", utils.FormatLength(st.TotalLengthMM))
	fmt.Fprintf(w, "Longest:       %s\n", utils.FormatLength(st.MaxLengthMM))
	fmt.Fprintf(w, "Density:       %.1f stitches/cm²\n", st.Density)
	fmt.Fprintf(w, "Sewing time:   %s\n", utils.FormatTime(time.Duration(st.Minutes*float64(time.Minute))))
	for _, u := range st.Usage {
		fmt.Fprintf(w, "  %2d %-24s %6d stitches %s\n",
			u.Index, u.Thread, u.Stitches, utils.FormatLength(u.LengthMM))
	}
}

// cleanup removes the downloaded source file, if any.
func cleanup() {
	if tmpFile != "" {
		os.Remove(tmpFile)
		tmpFile = ""
	}
}

// fatal exits without running deferred calls, so it cleans up first.
func fatal(msg string, err error) {
	cleanup()
	if spinner != nil {
		spinner.RestoreCursor()
	}
	log.Fatalf(utils.DecorateText(msg, utils.ErrorMessage), err)
}
