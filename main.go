package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rm-hull/photo-filters/cmd"
	"github.com/rm-hull/photo-filters/internal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const userAgent = "photo-filters (+https://github.com/rm-hull/photo-filters)"

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func setupLogging(debug bool) {
	if debug {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func addFilterFlags(c *cobra.Command, opts *cmd.FilterOptions) {
	c.Flags().StringVar(&opts.Angle, "angle", "", "Shear angle in degrees, between -90 and 90 (default derived from the aspect ratio)")
	c.Flags().Float64Var(&opts.Scale, "scale", 0, "Vertical scale for shear (default 0.8)")
	c.Flags().StringVar(&opts.Direction, "direction", "cw", "Rotation direction: cw, ccw or 180")
	c.Flags().Float64Var(&opts.Blur, "blur", 0, "Gaussian blur sigma applied after the filter")
	c.Flags().BoolVar(&opts.Greyscale, "greyscale", false, "Convert the result to greyscale")
}

func main() {
	var debug bool
	var applyOutput, previewOutput string
	var delay float64
	var filterOpts cmd.FilterOptions
	var batchOpts cmd.BatchOptions
	var serverOpts cmd.ApiServerOptions

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	client := internal.NewRemoteImageClient(userAgent)

	rootCmd := &cobra.Command{
		Use:  "photo-filters",
		Long: `Geometric and compositing photo filters: reflect, shear, rotate and combine`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(debug)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging (and pprof for api-server) - WARNING: do not enable in production")

	applyCmd := &cobra.Command{
		Use:   "apply <filter> <input> [<bottom>] -o <output>",
		Short: "Apply a filter to one image (two for composite); inputs may be paths or URLs",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(_ *cobra.Command, args []string) error {
			filterOpts.Name = args[0]
			return cmd.Apply(client, filterOpts, args[1:], applyOutput)
		},
	}
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "out.png", "Output file; the extension picks the format (png, jpg, bmp, tiff)")
	addFilterFlags(applyCmd, &filterOpts)

	previewCmd := &cobra.Command{
		Use:   "preview <filter> <input> [<bottom>] -o <output.png>",
		Short: "Write an animated PNG alternating between the original and the filtered image",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(_ *cobra.Command, args []string) error {
			filterOpts.Name = args[0]
			return cmd.Preview(client, filterOpts, args[1:], previewOutput, delay)
		},
	}
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "preview.png", "Output APNG file")
	previewCmd.Flags().Float64Var(&delay, "delay", 1.0, "Seconds to show each frame")
	addFilterFlags(previewCmd, &filterOpts)

	batchCmd := &cobra.Command{
		Use:   "batch <filter> --in <dir> --out <dir> [--workers <n>] [--cron <schedule>]",
		Short: "Apply a filter to every image in a directory, optionally on a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			batchOpts.Filter.Name = args[0]
			return cmd.Batch(batchOpts)
		},
	}
	batchCmd.Flags().StringVar(&batchOpts.InDir, "in", "./data/in", "Input directory")
	batchCmd.Flags().StringVar(&batchOpts.OutDir, "out", "./data/out", "Output directory")
	batchCmd.Flags().IntVar(&batchOpts.Workers, "workers", 4, "Number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOpts.Schedule, "cron", "", "Cron schedule to re-run the batch on, e.g. \"30 4 * * *\"")
	batchCmd.Flags().StringVar(&batchOpts.Filter.Bottom, "bottom", "", "Bottom layer image for composite")
	addFilterFlags(batchCmd, &batchOpts.Filter)

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--root <path>] [--port <port>] [--inbox <path>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			serverOpts.Debug = debug
			cmd.ApiServer(serverOpts)
		},
	}
	apiServerCmd.Flags().StringVar(&serverOpts.RootDir, "root", envOr("PHOTO_FILTERS_ROOT", "./data/results"), "Path to results folder")
	apiServerCmd.Flags().IntVar(&serverOpts.Port, "port", envIntOr("PHOTO_FILTERS_PORT", 8080), "Port to run HTTP server on")
	apiServerCmd.Flags().StringVar(&serverOpts.InboxDir, "inbox", envOr("PHOTO_FILTERS_INBOX", ""), "Folder polled for new images to filter into the results folder")
	apiServerCmd.Flags().DurationVar(&serverOpts.InboxInterval, "inbox-interval", time.Minute, "How often to poll the inbox")
	apiServerCmd.Flags().StringVar(&serverOpts.InboxFilter.Name, "inbox-filter", envOr("PHOTO_FILTERS_INBOX_FILTER", "reflect-flip"), "Filter applied to inbox images")
	apiServerCmd.Flags().StringVar(&serverOpts.InboxFilter.Bottom, "inbox-bottom", "", "Bottom layer image when the inbox filter is composite")

	rootCmd.AddCommand(applyCmd, previewCmd, batchCmd, apiServerCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
