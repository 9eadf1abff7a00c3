// Command coom-build computes a co-occurrence matrix from a directory
// of text or HTML documents and prints a summary, optionally persisting
// the matrix to a SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cogstats/coom/pkg/coom"
	"github.com/cogstats/coom/pkg/coom/config"
	"github.com/cogstats/coom/pkg/coom/corpus"
	"github.com/cogstats/coom/pkg/coom/display"
	"github.com/cogstats/coom/pkg/coom/ingest"
	"github.com/cogstats/coom/pkg/coom/store/sqlite"
)

func main() {
	var (
		input     = flag.String("input", "", "Directory of .txt/.html documents (required)")
		cfgPath   = flag.String("config", "", "Optional YAML config file")
		window    = flag.Int("window", 0, "Override window size")
		normalize = flag.Bool("normalize", true, "Weight co-occurrences by inverse distance")
		workers   = flag.Int("workers", 0, "Override worker count")
		dbPath    = flag.String("db", "", "Optional SQLite database to persist the matrix")
		name      = flag.String("name", "", "Name for the persisted matrix (defaults to the input directory)")
		table     = flag.Bool("table", false, "Print a dense table preview")
		top       = flag.Int("top", 10, "Number of top pairs in the summary")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	loader := config.Loader{ConfigPath: *cfgPath}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	opts := comp.Options
	if *window > 0 {
		opts.WindowSize = *window
	}
	if *workers > 0 {
		opts.Workers = *workers
	}
	if *cfgPath == "" {
		opts.Normalize = *normalize
	}

	c, err := loadCorpus(*input, comp.Tokenizer)
	if err != nil {
		log.Fatalf("load documents: %v", err)
	}
	if c.Len() == 0 {
		log.Fatalf("no .txt or .html documents under %s", *input)
	}

	m, err := coom.Build(ctx, c, nil, opts)
	if err != nil {
		log.Fatalf("build matrix: %v", err)
	}

	fmt.Printf("%d documents, vocabulary of %d terms\n", c.Len(), m.Dim())
	fmt.Printf("co-occurrence matrix %dx%d, %d non-zero pairs\n", m.Dim(), m.Dim(), m.Matrix().NNZ())
	for _, p := range display.TopPairs(m, *top) {
		fmt.Printf("  %s ~ %s: %.4f\n", p.T1, p.T2, p.Weight)
	}
	if *table {
		fmt.Print(display.Table(m, 20))
	}

	if *dbPath != "" {
		s, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer s.Close()

		label := *name
		if label == "" {
			label = filepath.Base(*input)
		}
		id, err := s.SaveMatrix(ctx, label, m, opts)
		if err != nil {
			log.Fatalf("save matrix: %v", err)
		}
		fmt.Printf("saved as %s (%s)\n", id, label)
	}
}

// loadCorpus reads every .txt and .html file under dir, in lexical
// order, and tokenizes each into one document.
func loadCorpus(dir string, tokenizer *ingest.Tokenizer) (*corpus.Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	c := corpus.New()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".txt" && ext != ".html" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		text := string(data)
		if ext == ".html" {
			text = ingest.StripHTML(text)
		}

		c.Add(corpus.NewDocument(e.Name(), tokenizer.Tokenize(text)))
	}
	return c, nil
}
