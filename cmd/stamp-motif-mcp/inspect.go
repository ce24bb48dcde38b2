package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironsheep/stamp-motif-mcp/internal/imaging"
	"github.com/ironsheep/stamp-motif-mcp/internal/motif"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	okFg      = lipgloss.Color("#22C55E")
	badFg     = lipgloss.Color("#EF4444")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(dimFg).Width(14)
	okStyle    = lipgloss.NewStyle().Foreground(okFg)
	badStyle   = lipgloss.NewStyle().Foreground(badFg)
)

// report is what inspect prints for one image.
type report struct {
	Path   string
	Info   *imaging.ImageInfo
	Opts   motif.Options
	Result *motif.Result
	// Problem is the mesh validation error, if any.
	Problem error
}

func runInspect(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	opts := motif.DefaultOptions()
	channel := fs.String("channel", "", "height channel: alpha, luminance or lightness (default: suggested)")
	fs.Float64Var(&opts.ClipBottom, "clip-bottom", opts.ClipBottom, "lower clip threshold (0-1)")
	fs.Float64Var(&opts.ClipTop, "clip-top", opts.ClipTop, "upper clip threshold (0-1)")
	fs.Float64Var(&opts.Size[0], "width", opts.Size[0], "motif width")
	fs.Float64Var(&opts.Size[1], "depth", opts.Size[1], "motif depth")
	fs.Float64Var(&opts.Size[2], "height", opts.Size[2], "motif height")
	fs.IntVar(&opts.MaxSize[0], "max-width", opts.MaxSize[0], "maximum grid width in cells")
	fs.IntVar(&opts.MaxSize[1], "max-depth", opts.MaxSize[1], "maximum grid depth in cells")
	fs.Float64Var(&opts.BlurRadius, "blur", 0, "gaussian blur radius before sampling")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one image path")
	}
	path := fs.Arg(0)

	cache := imaging.NewImageCache()
	info, err := imaging.LoadImageInfo(cache, path)
	if err != nil {
		return err
	}
	opts.Channel = info.SuggestedChannel
	if *channel != "" {
		if opts.Channel, err = imaging.ParseChannel(*channel); err != nil {
			return err
		}
	}

	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	res, err := motif.Generate(context.Background(), img, opts)
	if err != nil {
		return err
	}

	r := report{Path: path, Info: info, Opts: opts, Result: res}
	if !res.Empty() {
		r.Problem = res.Mesh.Validate()
	}
	_, err = fmt.Fprintln(out, r.render())
	return err
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func (r report) levels() string {
	levels := imaging.HeightLevels(r.Result.HeightMap, 16, 0)
	if !levels.Bimodal {
		return fmt.Sprintf("%d band(s), no clear cut", len(levels.Levels))
	}
	return fmt.Sprintf("%d bands, suggested cut %.3f", len(levels.Levels), levels.SuggestedCut)
}

func (r report) render() string {
	res := r.Result
	lines := []string{
		titleStyle.Render("Motif " + r.Path),
		"",
		row("source", fmt.Sprintf("%dx%d %s", r.Info.Width, r.Info.Height, r.Info.Format)),
		row("channel", string(r.Opts.Channel)),
		row("clip", fmt.Sprintf("%.3f - %.3f (cut at %d)", r.Opts.ClipBottom, r.Opts.ClipTop,
			imaging.CutLevel(r.Opts.ClipBottom, r.Opts.ClipTop))),
		row("levels", r.levels()),
		row("grid", fmt.Sprintf("%dx%d, %d cells on", res.Grid.Width, res.Grid.Height, res.Stats.Cells)),
		row("components", fmt.Sprintf("%d (%d holes)", res.Stats.Components, res.Stats.Holes)),
	}

	if res.Empty() {
		lines = append(lines, row("solid", badStyle.Render("none: nothing survived the clip")))
		return boxStyle.Render(strings.Join(lines, "\n"))
	}

	lines = append(lines,
		row("size", fmt.Sprintf("%g x %g x %g", r.Opts.Size[0], r.Opts.Size[1], r.Opts.Size[2])),
		row("mesh", fmt.Sprintf("%d vertices, %d triangles", res.Stats.Vertices, res.Stats.Triangles)),
		row("volume", fmt.Sprintf("%.3f", res.Stats.Volume)),
	)
	if r.Problem != nil {
		lines = append(lines, row("watertight", badStyle.Render("no: "+r.Problem.Error())))
	} else {
		lines = append(lines, row("watertight", okStyle.Render("yes")))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
