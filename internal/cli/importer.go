package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dcolors/internal/domain/models"
	"dcolors/internal/lib/logger/sl"
	"dcolors/internal/services/catalog"
	"dcolors/internal/services/imaging"

	"github.com/google/uuid"
)

type Optimizer interface {
	OptimizeBatch(ctx context.Context, sources []imaging.Source) (imaging.BatchResult, error)
}

type PaintingCreator interface {
	CreatePainting(ctx context.Context, draft catalog.Draft) (uuid.UUID, catalog.FieldErrors, error)
}

// ImportReport итог импорта одной записи манифеста
type ImportReport struct {
	Index    int
	Title    string
	ID       uuid.UUID
	Invalid  []string
	Rejected []models.RejectedFile
	Err      error
}

func (r ImportReport) OK() bool {
	return r.Err == nil && len(r.Invalid) == 0
}

type Importer struct {
	log       *slog.Logger
	optimizer Optimizer
	creator   PaintingCreator
	dryRun    bool
}

// NewImporter returns an importer. A nil creator only validates entries.
func NewImporter(log *slog.Logger, optimizer Optimizer, creator PaintingCreator) *Importer {
	return &Importer{
		log:       log,
		optimizer: optimizer,
		creator:   creator,
		dryRun:    creator == nil,
	}
}

// Run imports entries one by one. A failed entry does not stop the batch;
// only cancellation of ctx does.
func (im *Importer) Run(ctx context.Context, m Manifest) ([]ImportReport, error) {
	const op = "cli.Importer.Run"

	log := im.log.With(
		slog.String("op", op),
		slog.Int("entries", len(m.Paintings)),
	)

	reports := make([]ImportReport, 0, len(m.Paintings))

	for i, entry := range m.Paintings {
		if err := ctx.Err(); err != nil {
			return reports, fmt.Errorf("%s: %w", op, err)
		}

		report := im.importEntry(ctx, i, entry)
		if report.Err != nil {
			log.Warn("entry failed", slog.Int("index", i), sl.Err(report.Err))
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (im *Importer) importEntry(ctx context.Context, index int, entry ManifestEntry) ImportReport {
	report := ImportReport{Index: index, Title: entry.Title}

	sources := make([]imaging.Source, len(entry.Images))
	for i, path := range entry.Images {
		sources[i] = imaging.FromPath(path)
	}

	draft := catalog.NewDraft().
		WithTitle(entry.Title).
		WithCategory(entry.Category).
		WithAuthor(entry.Author).
		WithReference(entry.Reference)
	for _, s := range entry.Sizes {
		draft = draft.AddSize(s)
	}

	if len(sources) > 0 {
		result, err := im.optimizer.OptimizeBatch(ctx, sources)
		if err != nil {
			report.Err = err
			return report
		}
		report.Rejected = result.Rejected

		uris := make([]string, len(result.Images))
		for i, asset := range result.Images {
			uris[i] = asset.DataURI
		}
		draft = draft.WithImages(uris)
	}

	if im.dryRun {
		report.Invalid = catalog.Validate(draft).Invalid()
		return report
	}

	id, fields, err := im.creator.CreatePainting(ctx, draft)
	if err != nil {
		report.Err = err
		return report
	}

	report.ID = id
	report.Invalid = fields.Invalid()

	return report
}

// WriteReports печатает по строке на запись и возвращает число неудачных
func WriteReports(w io.Writer, reports []ImportReport) (int, error) {
	failed := 0

	for _, r := range reports {
		var line string

		switch {
		case r.Err != nil:
			failed++
			line = fmt.Sprintf("#%d %q: error: %v", r.Index, r.Title, r.Err)
		case len(r.Invalid) > 0:
			failed++
			line = fmt.Sprintf("#%d %q: invalid fields: %s", r.Index, r.Title, strings.Join(r.Invalid, ", "))
		case r.ID == uuid.Nil:
			line = fmt.Sprintf("#%d %q: ok", r.Index, r.Title)
		default:
			line = fmt.Sprintf("#%d %q: created %s", r.Index, r.Title, r.ID)
		}

		for _, rej := range r.Rejected {
			line += fmt.Sprintf("\n    skipped image %s: %s", rej.Filename, rej.Reason)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return failed, err
		}
	}

	return failed, nil
}
