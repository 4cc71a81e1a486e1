package markdown

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/use-agent/wikigrab/models"
)

// UnitFor builds the conversion unit for one source file.
func UnitFor(src, outputDir string) models.ConversionUnit {
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return models.ConversionUnit{
		SourcePath: src,
		TargetPath: filepath.Join(outputDir, stem+".md"),
		Title:      strings.TrimSpace(strings.ReplaceAll(stem, "_", " ")),
	}
}

// DiscoverUnits lists the .html files of inputDir in sorted order as
// conversion units targeting outputDir.
func DiscoverUnits(inputDir, outputDir string) ([]models.ConversionUnit, error) {
	pattern := filepath.Join(inputDir, "*.html")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("markdown: list %s: %w", pattern, err)
	}
	sort.Strings(matches)

	units := make([]models.ConversionUnit, 0, len(matches))
	for _, src := range matches {
		units = append(units, UnitFor(src, outputDir))
	}
	return units, nil
}

// ConvertFile converts one saved fragment into a Markdown file. Empty and
// heading-only sources are skipped, not failed; skipped reports which.
func (c *Converter) ConvertFile(unit models.ConversionUnit) (skipped bool, err error) {
	raw, err := os.ReadFile(unit.SourcePath)
	if err != nil {
		return false, models.NewWikiError(models.ErrCodeConversion, fmt.Sprintf("read %s", unit.SourcePath), err)
	}

	fragment := string(raw)
	if strings.TrimSpace(fragment) == "" || HeadingOnly(fragment) {
		return true, nil
	}

	if c.opts.ExtractArticle && looksLikeDocument(fragment) {
		fragment = extractArticle(fragment, unit.SourcePath)
	}

	md, err := c.ConvertString(fragment)
	if err != nil {
		return false, err
	}
	if md == "" {
		return true, nil
	}

	if c.opts.FrontMatter {
		fm, err := frontMatterFor(unit, fragment)
		if err != nil {
			return false, err
		}
		md = fm + md
	}

	if err := os.WriteFile(unit.TargetPath, []byte(md+"\n"), 0o644); err != nil {
		return false, models.NewWikiError(models.ErrCodeConversion, fmt.Sprintf("write %s", unit.TargetPath), err)
	}
	return false, nil
}

// ConvertAll converts every .html file under inputDir into outputDir,
// sequentially in sorted order. A single file's failure is recorded and
// skipped; the batch always continues.
func (c *Converter) ConvertAll(inputDir, outputDir string) (*models.ConvertReport, error) {
	start := time.Now()
	report := &models.ConvertReport{RunID: uuid.NewString()}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("markdown: create output dir %s: %w", outputDir, err)
	}

	units, err := DiscoverUnits(inputDir, outputDir)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		slog.Info("no HTML files to convert", "input_dir", inputDir)
	}

	for _, unit := range units {
		skipped, err := c.ConvertFile(unit)
		switch {
		case err != nil:
			report.Failed++
			report.Failures = append(report.Failures, models.FileFailure{
				Path:   unit.SourcePath,
				Reason: err.Error(),
			})
			slog.Warn("conversion failed", "file", unit.SourcePath, "error", err)
		case skipped:
			report.Skipped++
			slog.Debug("skipped", "file", unit.SourcePath)
		default:
			report.Converted++
			slog.Debug("converted", "file", unit.SourcePath, "target", unit.TargetPath)
		}
	}

	report.ElapsedMs = time.Since(start).Milliseconds()
	slog.Info("conversion finished",
		"run_id", report.RunID,
		"converted", report.Converted,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"elapsed_ms", report.ElapsedMs,
	)
	return report, nil
}
