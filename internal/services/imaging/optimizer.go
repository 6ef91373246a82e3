package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"

	"dcolors/internal/domain/models"
	"dcolors/internal/lib/logger/sl"

	"golang.org/x/image/draw"
)

// Options задают бюджет оптимизации.
type Options struct {
	TargetSizeKB float64
	MaxAttempts  int
	MaxCount     int
	StartQuality float64
	QualityStep  float64
	MinQuality   float64
}

func DefaultOptions() Options {
	return Options{
		TargetSizeKB: 700,
		MaxAttempts:  5,
		MaxCount:     models.MaxImages,
		StartQuality: 0.85,
		QualityStep:  0.15,
		MinQuality:   0.30,
	}
}

// Recorder receives optimizer telemetry. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveAttempts(attempts int)
	RejectedFile()
}

type nopRecorder struct{}

func (nopRecorder) ObserveAttempts(int) {}
func (nopRecorder) RejectedFile()       {}

// Source is one uploaded file.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type fileHeaderSource struct{ fh *multipart.FileHeader }

func (s fileHeaderSource) Name() string                 { return s.fh.Filename }
func (s fileHeaderSource) Open() (io.ReadCloser, error) { return s.fh.Open() }

// FromFileHeader wraps a multipart upload.
func FromFileHeader(fh *multipart.FileHeader) Source {
	return fileHeaderSource{fh: fh}
}

type pathSource string

func (s pathSource) Name() string                 { return filepath.Base(string(s)) }
func (s pathSource) Open() (io.ReadCloser, error) { return os.Open(string(s)) }

// FromPath wraps a file on disk.
func FromPath(path string) Source {
	return pathSource(path)
}

// BatchResult keeps accepted assets in input order.
type BatchResult struct {
	Images   []models.ImageAsset
	Rejected []models.RejectedFile
}

type Optimizer struct {
	log      *slog.Logger
	opts     Options
	encoder  Encoder
	scaler   draw.Scaler
	recorder Recorder
}

type Option func(*Optimizer)

func WithEncoder(enc Encoder) Option {
	return func(o *Optimizer) { o.encoder = enc }
}

func WithRecorder(r Recorder) Option {
	return func(o *Optimizer) { o.recorder = r }
}

func NewOptimizer(log *slog.Logger, opts Options, options ...Option) *Optimizer {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.MaxCount < 1 {
		opts.MaxCount = models.MaxImages
	}

	o := &Optimizer{
		log:      log,
		opts:     opts,
		encoder:  JPEGEncoder(),
		scaler:   draw.CatmullRom,
		recorder: nopRecorder{},
	}
	for _, opt := range options {
		opt(o)
	}

	return o
}

// Encode resamples img to width x height and encodes it at quality in (0, 1].
// It returns the payload and its approximate size in KB.
func (o *Optimizer) Encode(img image.Image, width, height int, quality float64) ([]byte, float64, error) {
	raster := resample(o.scaler, img, width, height)

	data, err := encodeRaster(o.encoder, raster, percent(quality))
	if err != nil {
		return nil, 0, fmt.Errorf("encode: %w", err)
	}

	return data, ApproxSizeKB(dataURILength(o.encoder.MimeType(), len(data))), nil
}

// Optimize decodes src and searches for an encoding under the size budget.
func (o *Optimizer) Optimize(ctx context.Context, src Source) (models.ImageAsset, error) {
	const op = "imaging.Optimizer.Optimize"

	rc, err := src.Open()
	if err != nil {
		return models.ImageAsset{}, &DecodeError{Filename: src.Name(), Err: err}
	}
	defer rc.Close()

	img, err := Decode(rc)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Filename = src.Name()
		}
		return models.ImageAsset{}, err
	}

	asset, err := o.OptimizeImage(ctx, img)
	if err != nil {
		return models.ImageAsset{}, fmt.Errorf("%s: %s: %w", op, src.Name(), err)
	}

	return asset, nil
}

// OptimizeImage runs the quality/dimension search on a decoded raster.
// Quality is stepped in whole percent so the schedule stays exact.
func (o *Optimizer) OptimizeImage(ctx context.Context, img image.Image) (models.ImageAsset, error) {
	const op = "imaging.Optimizer.OptimizeImage"

	log := o.log.With(slog.String("op", op))

	b := img.Bounds()
	floor := percent(o.opts.MinQuality)
	step := percent(o.opts.QualityStep)
	current := percent(o.opts.StartQuality)

	for attempt := 1; attempt <= o.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.ImageAsset{}, err
		}

		asset, err := o.attempt(img, b, current)
		if err != nil {
			return models.ImageAsset{}, err
		}
		asset.Attempts = attempt

		log.Debug("encode attempt",
			slog.Int("attempt", attempt),
			slog.Int("quality", current),
			slog.Int("width", asset.Width),
			slog.Int("height", asset.Height),
			slog.Float64("size_kb", asset.SizeKB),
		)

		if asset.SizeKB <= o.opts.TargetSizeKB {
			o.recorder.ObserveAttempts(attempt)
			return asset, nil
		}

		current -= step
		if current < floor {
			current = floor
		}
	}

	if err := ctx.Err(); err != nil {
		return models.ImageAsset{}, err
	}

	asset, err := o.attempt(img, b, floor)
	if err != nil {
		return models.ImageAsset{}, err
	}
	asset.Attempts = o.opts.MaxAttempts + 1

	log.Warn("size budget not met, accepting floor quality",
		slog.Float64("size_kb", asset.SizeKB),
		slog.Float64("target_kb", o.opts.TargetSizeKB),
	)
	o.recorder.ObserveAttempts(asset.Attempts)

	return asset, nil
}

func (o *Optimizer) attempt(img image.Image, b image.Rectangle, pct int) (models.ImageAsset, error) {
	q := float64(pct) / 100
	w, h := PlanDimensions(b.Dx(), b.Dy(), q)

	data, sizeKB, err := o.Encode(img, w, h, q)
	if err != nil {
		return models.ImageAsset{}, err
	}

	return models.ImageAsset{
		DataURI: DataURI(o.encoder.MimeType(), data),
		Format:  o.encoder.MimeType(),
		SizeKB:  sizeKB,
		Width:   w,
		Height:  h,
		Quality: q,
	}, nil
}

// OptimizeBatch processes at most MaxCount sources in order. Files past the
// limit and files that fail are reported in Rejected; the rest succeed.
// Cancellation discards the whole batch.
func (o *Optimizer) OptimizeBatch(ctx context.Context, sources []Source) (BatchResult, error) {
	const op = "imaging.Optimizer.OptimizeBatch"

	log := o.log.With(slog.String("op", op))

	result := BatchResult{
		Images:   make([]models.ImageAsset, 0, min(len(sources), o.opts.MaxCount)),
		Rejected: []models.RejectedFile{},
	}

	for i, src := range sources {
		if i >= o.opts.MaxCount {
			result.Rejected = append(result.Rejected, models.RejectedFile{
				Index:    i,
				Filename: src.Name(),
				Reason:   fmt.Sprintf("only %d images are allowed", o.opts.MaxCount),
			})
			continue
		}

		if err := ctx.Err(); err != nil {
			return BatchResult{}, fmt.Errorf("%s: %w", op, err)
		}

		asset, err := o.Optimize(ctx, src)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return BatchResult{}, fmt.Errorf("%s: %w", op, err)
			}

			log.Warn("image rejected", slog.String("file", src.Name()), sl.Err(err))
			o.recorder.RejectedFile()
			result.Rejected = append(result.Rejected, models.RejectedFile{
				Index:    i,
				Filename: src.Name(),
				Reason:   err.Error(),
			})
			continue
		}

		result.Images = append(result.Images, asset)
	}

	log.Info("batch optimized",
		slog.Int("accepted", len(result.Images)),
		slog.Int("rejected", len(result.Rejected)),
	)

	return result, nil
}

func percent(q float64) int {
	return int(math.Round(q * 100))
}
