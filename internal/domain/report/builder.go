package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/okian/mindlab/internal/domain/aggregate"
	"github.com/okian/mindlab/internal/domain/model"
)

// Document defaults.
const (
	ContentType       = "application/pdf"
	FilePrefix        = "VVL_Mind_Report_"
	DefaultTitle      = "V.V.L. MIND LAB - PERFORMANCE REPORT"
	DefaultNotesLimit = 80
	defaultPageSize   = "A4"
	dateLayout        = "02/01/2006"
	fontFamily        = "Arial"
	pageNumberAlias   = "{nb}"
	lineWidth         = 190
	maxRating         = 5.0
)

// Builder renders journal entries into a paginated PDF.
type Builder struct {
	title      string
	notesLimit int
	pageSize   string
	compress   bool
	author     string
}

// NewBuilder creates a Builder with defaults applied before opts.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		title:      DefaultTitle,
		notesLimit: DefaultNotesLimit,
		pageSize:   defaultPageSize,
		compress:   true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders records in the order given. An empty subset still yields a
// document with the title block and empty sections.
func (b *Builder) Build(records []model.Record, periodLabel string, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", b.pageSize, "")
	pdf.SetCompression(b.compress)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(b.title, true)
	if b.author != "" {
		pdf.SetAuthor(b.author, true)
	}
	pdf.AliasNbPages(pageNumberAlias)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/%s", pdf.PageNo(), pageNumberAlias), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	b.titleBlock(pdf, periodLabel, generatedAt)
	if err := b.aggregateBlock(pdf, records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReportGeneration, err)
	}
	b.historyBlock(pdf, records)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReportGeneration, err)
	}
	return buf.Bytes(), nil
}

func (b *Builder) titleBlock(pdf *fpdf.Fpdf, periodLabel string, generatedAt time.Time) {
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(lineWidth, 10, encode(b.title), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	subtitle := fmt.Sprintf("Period: %s | Generated: %s", periodLabel, generatedAt.Format(dateLayout))
	pdf.CellFormat(lineWidth, 10, encode(subtitle), "", 1, "C", false, 0, "")
	pdf.Ln(10)
}

// aggregateBlock lists every skill mean, tension included. It never calls the
// aggregator on an empty subset.
func (b *Builder) aggregateBlock(pdf *fpdf.Fpdf, records []model.Record) error {
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(lineWidth, 10, "Mental skill averages for the period:", "", 1, "", false, 0, "")
	if len(records) == 0 {
		pdf.Ln(10)
		return nil
	}

	profile, err := aggregate.Aggregate(records, model.AllSkills())
	if err != nil {
		return err
	}
	pdf.SetFont(fontFamily, "", 12)
	for _, s := range profile.Skills {
		mean, _ := profile.Mean(s)
		line := fmt.Sprintf("- %s: %.1f / %.1f", s, mean, maxRating)
		pdf.CellFormat(lineWidth, 8, encode(line), "", 1, "", false, 0, "")
	}
	pdf.Ln(10)
	return nil
}

func (b *Builder) historyBlock(pdf *fpdf.Fpdf, records []model.Record) {
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(lineWidth, 10, "Tournament history for the period:", "", 1, "", false, 0, "")
	for _, r := range records {
		pdf.SetFont(fontFamily, "", 10)
		line := fmt.Sprintf("%s | %s | %d", r.Timestamp.Format(dateLayout), r.Venue, r.Score)
		pdf.CellFormat(lineWidth, 7, encode(line), "", 1, "", false, 0, "")

		notes := strings.TrimSpace(clean(r.Notes))
		if notes == "" {
			continue
		}
		pdf.SetFont(fontFamily, "I", 9)
		pdf.CellFormat(lineWidth, 6, encode("   "+truncate(notes, b.notesLimit)), "", 1, "", false, 0, "")
	}
}
