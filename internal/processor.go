package internal

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/filter"
	"github.com/rm-hull/photo-filters/internal/photo"
	log "github.com/sirupsen/logrus"
)

var ErrNoImages = errors.New("no images to process")

type BatchConfig struct {
	InDir    string
	OutDir   string
	PoolSize int
	// MaxJobs limits how many images are dispatched; zero or less means all
	MaxJobs int
	// Request carries the filter and its parameters; its operands are
	// filled in per image
	Request filter.Request
	// BottomPath is the bottom layer for every image when compositing
	BottomPath string
	Extra      []photo.Stage
}

type Processor struct {
	startTime time.Time
	endTime   time.Time
	outDir    string
	poolSize  int
	maxJobs   int
	jobs      chan string
	results   chan error
	files     []string
	request   filter.Request
	bottom    image.Image
	extra     []photo.Stage
}

func NewProcessor(cfg BatchConfig) (*Processor, error) {
	if cfg.PoolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	startTime := time.Now()

	var bottom image.Image
	if cfg.Request.Kind == filter.Composite {
		if cfg.BottomPath == "" {
			return nil, errors.New("composite needs a bottom layer image")
		}
		img, err := adapter.Load(cfg.BottomPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load bottom layer: %w", err)
		}
		bottom = img
	}

	files, err := listImages(cfg.InDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", cfg.InDir, err)
	}

	log.Printf("Directory %s contains %d images", cfg.InDir, len(files))
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	maxJobs := cfg.MaxJobs
	if maxJobs <= 0 {
		maxJobs = -1
	}

	return &Processor{
		startTime: startTime,
		outDir:    cfg.OutDir,
		poolSize:  cfg.PoolSize,
		maxJobs:   maxJobs,
		jobs:      make(chan string),
		results:   make(chan error),
		files:     files,
		request:   cfg.Request,
		bottom:    bottom,
		extra:     cfg.Extra,
	}, nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && adapter.IsImagePath(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// OutputPath names the result for an input image: the input's base name
// suffixed with the filter, always as PNG so translucent output survives.
func OutputPath(outDir, input string, kind filter.Kind) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, fmt.Sprintf("%s-%s.png", base, kind))
}

// DispatchJobs sends files to the jobs channel for processing by workers.
// When maxJobs is greater than zero, it limits the number of jobs dispatched,
// hence set to -1 to dispatch all jobs.
func (p *Processor) DispatchJobs() {

	go func() {
		for n, file := range p.files {
			if p.maxJobs > 0 && n >= p.maxJobs {
				break
			}
			p.jobs <- file
		}
		close(p.jobs)
	}()
}

func (p *Processor) StartWorkers() {
	log.Printf("Starting processing images with pool size: %d", p.poolSize)

	for i := range p.poolSize {
		go p.worker(i)
	}
}

func (p *Processor) worker(i int) {
	log.Debugf("Worker %d started", i)
	for file := range p.jobs {
		p.results <- p.processFile(file)
	}
	log.Debugf("Worker %d finished", i)
}

func (p *Processor) processFile(file string) error {
	filename := OutputPath(p.outDir, file, p.request.Kind)

	// if the file already exists, skip processing
	if _, err := os.Stat(filename); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	img, err := adapter.Load(file)
	if err != nil {
		return err
	}

	req := p.request
	req.Operands = []image.Image{img}
	if p.bottom != nil {
		req.Operands = append(req.Operands, p.bottom)
	}

	out, err := filter.Apply(req, p.extra...)
	if err != nil {
		return fmt.Errorf("failed to apply %s to %s: %w", req.Kind, file, err)
	}

	if err := adapter.Save(filename, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

func (p *Processor) Wait() []error {
	waitFor := p.maxJobs
	if waitFor < 0 || waitFor > len(p.files) {
		waitFor = len(p.files)
	}
	log.Printf("Waiting for %d images to be processed", waitFor)

	errors := make([]error, 0, 10)
	for range waitFor {
		err := <-p.results
		if err != nil {
			errors = append(errors, err)
		}
	}
	p.endTime = time.Now()
	elapsed := p.endTime.Sub(p.startTime)
	log.Printf("All images processed in %s (errors=%d)", elapsed, len(errors))
	return errors
}

// RunBatch processes every image in cfg.InDir once. An empty input
// directory is not an error.
func RunBatch(cfg BatchConfig) []error {
	processor, err := NewProcessor(cfg)
	if errors.Is(err, ErrNoImages) {
		return nil
	}
	if err != nil {
		return []error{err}
	}

	processor.StartWorkers()
	processor.DispatchJobs()
	return processor.Wait()
}
