package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"university-assistant-be/internal/bootstrap"
	"university-assistant-be/internal/config"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/pkg/catalog"
	"university-assistant-be/pkg/embedding"
	"university-assistant-be/pkg/rag/intent"
	"university-assistant-be/pkg/utils"

	"github.com/fatih/color"
)

// trace_chunks shows how one corpus file is split and, with -query, how the
// published index ranks chunks for a question.
func main() {
	cfg := config.Load()

	query := flag.String("query", "", "optional question to run against the published index")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trace_chunks [-query text] <corpus-file.txt>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	head := color.New(color.FgCyan, color.Bold).PrintlnFunc()
	ok := color.New(color.FgGreen).PrintfFunc()
	bad := color.New(color.FgRed).PrintfFunc()

	raw, err := os.ReadFile(path)
	if err != nil {
		bad("read %s: %v\n", path, err)
		os.Exit(1)
	}
	text := string(raw)

	head("--- DOCUMENT ---")
	fmt.Printf("University: %s\n", strings.ToLower(filepath.Base(filepath.Dir(path))))
	fmt.Printf("Total Length: %d chars\n", len([]rune(text)))

	chunks := utils.SplitText(text, cfg.Index.ChunkSize, cfg.Index.Overlap)
	head("--- CHUNKS ---")
	for i, c := range chunks {
		fmt.Printf("[Chunk %d] Length: %d chars\n", i, len([]rune(c)))
		fmt.Printf("Preview: %s...\n", mbSubstr(c, 60))
	}

	head("--- COVERAGE ---")
	runes := []rune(text)
	samples := map[string]string{
		"START":  mbSubstr(text, 100),
		"MIDDLE": mbSubstr(string(runes[len(runes)/2:]), 100),
		"END":    string(runes[max(len(runes)-100, 0):]),
	}
	for _, name := range []string{"START", "MIDDLE", "END"} {
		if containsAny(chunks, samples[name]) {
			ok("[%s] Found\n", name)
		} else {
			bad("[%s] NOT FOUND! Sample: %s\n", name, samples[name])
		}
	}

	if *query == "" {
		return
	}

	ctx := context.Background()
	c, err := bootstrap.NewIngestion(ctx, cfg, logger.NewNopLogger())
	if err != nil {
		bad("bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		bad("catalog: %v\n", err)
		os.Exit(1)
	}
	university, _ := intent.NewDetector(cat).Detect(*query)

	head(fmt.Sprintf("--- TEST QUERY: %q (university %q) ---", *query, university))
	emb, err := c.Embedder.Generate(ctx, *query, embedding.TaskRetrievalQuery)
	if err != nil {
		bad("embedding failed: %v\n", err)
		os.Exit(1)
	}
	results, err := c.Index.SearchSimilar(ctx, emb.Embedding.Values, cfg.Index.TopK, university)
	if err != nil {
		bad("search failed: %v\n", err)
		os.Exit(1)
	}
	for i, r := range results {
		fmt.Printf("#%d %.4f %s/%s[%d] %s...\n", i+1, r.Similarity, r.Chunk.University, r.Chunk.SourceFile, r.Chunk.ChunkIndex, mbSubstr(r.Chunk.Text, 80))
	}
}

func containsAny(chunks []string, sample string) bool {
	for _, c := range chunks {
		if strings.Contains(c, sample) {
			return true
		}
	}
	return false
}

func mbSubstr(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l])
	}
	return s
}
