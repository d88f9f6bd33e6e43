// Command photonforge is the renderer's single binary (spec.md §6): a
// `render` subcommand that loads a scene and writes a linear EXR, and a
// `bvh-stats` subcommand that prints the top-level BVH's shape. Built with
// github.com/urfave/cli/v2 and github.com/olekukonko/tablewriter, the same
// combination achilleasa-polaris uses for its render/scene commands.
package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/dlaurent/photonforge/pkg/integrator"
	"github.com/dlaurent/photonforge/pkg/pfconfig"
	"github.com/dlaurent/photonforge/pkg/pflog"
	"github.com/dlaurent/photonforge/pkg/postprocess"
	"github.com/dlaurent/photonforge/pkg/render"
	"github.com/dlaurent/photonforge/pkg/sampler"
	"github.com/dlaurent/photonforge/pkg/sceneio/image"
	"github.com/dlaurent/photonforge/pkg/sceneio/xmlscene"
	"github.com/dlaurent/photonforge/pkg/shape"
	"github.com/dlaurent/photonforge/pkg/tev"
)

func main() {
	app := &cli.App{
		Name:  "photonforge",
		Usage: "an offline physically-based Monte Carlo path tracer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML defaults file"},
		},
		Commands: []*cli.Command{
			renderCommand(),
			bvhStatsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "photonforge:", err)
		os.Exit(1)
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render a scene to a linear EXR image",
		ArgsUsage: "<scene.xml>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "threads", Usage: "worker count (0 = runtime.NumCPU())"},
			&cli.IntFlag{Name: "spp", Usage: "samples per pixel"},
			&cli.StringFlag{Name: "out", Usage: "output EXR path"},
			&cli.StringFlag{Name: "preview-host", Usage: "tev host:port for live preview"},
			&cli.BoolFlag{Name: "no-preview", Usage: "disable the tev live preview"},
			&cli.IntFlag{Name: "width", Value: 768, Usage: "image width in pixels"},
			&cli.IntFlag{Name: "height", Value: 512, Usage: "image height in pixels"},
		},
		Action: runRender,
	}
}

func runRender(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one scene file argument")
	}
	scenePath := ctx.Args().First()

	cfg, err := pfconfig.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	applyRenderFlags(&cfg, ctx)

	var fileCfg pflog.FileConfig
	if cfg.LogFile != "" {
		fileCfg = pflog.DefaultFileConfig(cfg.LogFile)
	}
	logger := pflog.New(cfg.LogLevel, fileCfg)
	defer logger.Sync()

	logger.Info("loading scene", zap.String("path", scenePath))
	sc, err := xmlscene.Load(scenePath)
	if err != nil {
		logger.Error("scene load failed", zap.String("file", scenePath), zap.Error(err))
		return err
	}

	width, height := ctx.Int("width"), ctx.Int("height")
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	var preview render.Previewer
	if !cfg.NoPreview {
		client := tev.Dial(cfg.PreviewHost, scenePath, width, height, logger)
		preview = client
		defer client.Close()
	}

	baseSampler := newSampler(cfg.Sampler, cfg.SamplesPerPixel)
	integ := integrator.NewPathtracer(2)

	progCfg := render.ProgressiveConfig{
		Width:              width,
		Height:             height,
		TileSize:           cfg.TileSize,
		NumWorkers:         threads,
		InitialSamples:     1,
		MaxSamplesPerPixel: cfg.SamplesPerPixel,
		MaxPasses:          1,
	}

	logger.Info("rendering",
		zap.Int("width", width), zap.Int("height", height),
		zap.Int("spp", cfg.SamplesPerPixel), zap.Int("threads", threads))

	start := time.Now()
	img := render.ProgressiveRun(sc, integ, baseSampler, progCfg, preview)
	logger.Info("render finished", zap.Duration("elapsed", time.Since(start)))

	img = postprocess.Identity{}.Denoise(img)
	img = postprocess.Identity{}.Apply(img)

	if err := image.SaveEXR(cfg.OutputPath, img.Width, img.Height, img.Pixels); err != nil {
		logger.Error("writing output failed", zap.String("path", cfg.OutputPath), zap.Error(err))
		return err
	}
	logger.Info("wrote output", zap.String("path", cfg.OutputPath))
	return nil
}

func applyRenderFlags(cfg *pfconfig.RenderConfig, ctx *cli.Context) {
	if ctx.IsSet("threads") {
		cfg.Threads = ctx.Int("threads")
	}
	if ctx.IsSet("spp") {
		cfg.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("out") {
		cfg.OutputPath = ctx.String("out")
	}
	if ctx.IsSet("preview-host") {
		cfg.PreviewHost = ctx.String("preview-host")
	}
	if ctx.IsSet("no-preview") {
		cfg.NoPreview = ctx.Bool("no-preview")
	}
}

func newSampler(kind string, samplesPerPixel int) sampler.Sampler {
	if kind == "halton" {
		return sampler.NewHalton(samplesPerPixel)
	}
	return sampler.NewIndependent(samplesPerPixel)
}

func bvhStatsCommand() *cli.Command {
	return &cli.Command{
		Name:      "bvh-stats",
		Usage:     "print the top-level BVH's node/leaf/depth statistics",
		ArgsUsage: "<scene.xml>",
		Action:    runBVHStats,
	}
}

func runBVHStats(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one scene file argument")
	}
	scenePath := ctx.Args().First()

	sc, err := xmlscene.Load(scenePath)
	if err != nil {
		return err
	}

	group, ok := sc.TopShape.(*shape.Group)
	if !ok {
		fmt.Println("scene has a single top-level shape; no BVH was built")
		return nil
	}
	stats := group.BVHStats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Nodes", "Leaves", "Max depth", "Avg prims/leaf"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.NodeCount),
		fmt.Sprintf("%d", stats.LeafCount),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%.2f", stats.AveragePrimsPerLeaf),
	})
	table.Render()
	fmt.Print(buf.String())
	return nil
}
