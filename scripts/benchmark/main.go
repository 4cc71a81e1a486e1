// Command benchmark measures HTML-to-Markdown conversion throughput over a
// directory of saved wiki pages. It runs the converter N times per file and
// reports per-file latency and size reduction, writing a JSON report for
// comparison across revisions.
//
// Usage:
//
//	go run ./scripts/benchmark -input wiki_pages -runs 5 -output benchmark_results.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/use-agent/wikigrab/markdown"
)

var (
	input  = flag.String("input", "wiki_pages", "Directory of .html files to convert")
	runs   = flag.Int("runs", 5, "Number of conversion runs per file")
	output = flag.String("output", "benchmark_results.json", "JSON output file path")
)

// --- Benchmark result types ---

type runResult struct {
	Run           int    `json:"run"`
	ConvertMs     int64  `json:"convert_ms"`
	HTMLBytes     int    `json:"html_bytes"`
	MarkdownBytes int    `json:"markdown_bytes"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

type fileAverages struct {
	ConvertMs     float64 `json:"convert_ms"`
	MarkdownBytes float64 `json:"markdown_bytes"`
	ReductionPct  float64 `json:"reduction_percent"`
}

type fileResult struct {
	File     string        `json:"file"`
	Runs     []runResult   `json:"runs"`
	Averages *fileAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp   string       `json:"timestamp"`
	InputDir    string       `json:"input_dir"`
	RunsPerFile int          `json:"runs_per_file"`
	Results     []fileResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== Wikigrab Conversion Benchmark ===")
	fmt.Printf("Input:     %s\n", *input)
	fmt.Printf("Runs/file: %d\n", *runs)
	fmt.Printf("Output:    %s\n", *output)
	fmt.Println()

	files, err := filepath.Glob(filepath.Join(*input, "*.html"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot list %s: %v\n", *input, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no .html files under %s\n", *input)
		fmt.Fprintf(os.Stderr, "Run wikigrab first to download some pages\n")
		os.Exit(1)
	}
	sort.Strings(files)

	conv := markdown.New(markdown.Options{})

	report := benchmarkReport{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		InputDir:    *input,
		RunsPerFile: *runs,
	}

	for _, path := range files {
		name := filepath.Base(path)
		fmt.Printf("Benchmarking %s ...\n", name)
		fr := fileResult{File: name}

		doc, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("  read failed: %v\n", err)
			fr.Runs = append(fr.Runs, runResult{Run: 1, Error: err.Error()})
			report.Results = append(report.Results, fr)
			continue
		}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkFile(conv, string(doc), i)
			if rr.Success {
				fmt.Printf("OK  %dms  %s -> %s bytes\n", rr.ConvertMs, formatInt(rr.HTMLBytes), formatInt(rr.MarkdownBytes))
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			fr.Runs = append(fr.Runs, rr)
		}

		fr.Averages = computeAverages(fr.Runs)
		report.Results = append(report.Results, fr)
		fmt.Println()
	}

	// Print summary table.
	printTable(report.Results)

	// Write JSON report.
	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func benchmarkFile(conv *markdown.Converter, doc string, run int) runResult {
	rr := runResult{Run: run, HTMLBytes: len(doc)}

	start := time.Now()
	md, err := conv.ConvertString(doc)
	rr.ConvertMs = time.Since(start).Milliseconds()

	if err != nil {
		rr.Error = err.Error()
		return rr
	}

	rr.Success = true
	rr.MarkdownBytes = len(md)
	return rr
}

func computeAverages(runs []runResult) *fileAverages {
	var successCount int
	var avg fileAverages
	var htmlBytes float64

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.ConvertMs += float64(r.ConvertMs)
		avg.MarkdownBytes += float64(r.MarkdownBytes)
		htmlBytes += float64(r.HTMLBytes)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.ConvertMs /= n
	avg.MarkdownBytes /= n
	htmlBytes /= n
	if htmlBytes > 0 {
		avg.ReductionPct = (1 - avg.MarkdownBytes/htmlBytes) * 100
	}
	return &avg
}

func printTable(results []fileResult) {
	fmt.Println(strings.Repeat("─", 75))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "File\tAvg Latency\tMarkdown Len\tReduction\n")
	fmt.Fprintf(w, "────\t───────────\t────────────\t─────────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\tFAILED\t-\t-\n", truncateName(r.File, 40))
			continue
		}

		fmt.Fprintf(w, "%s\t%dms\t%s\t%.1f%%\n",
			truncateName(r.File, 40),
			int64(r.Averages.ConvertMs),
			formatInt(int(r.Averages.MarkdownBytes)),
			r.Averages.ReductionPct,
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 75))
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func formatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
