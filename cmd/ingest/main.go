package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"university-assistant-be/internal/bootstrap"
	"university-assistant-be/internal/config"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/service"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	root := flag.String("root", cfg.Index.DataDir, "corpus root: one sub-folder per university holding .txt files")
	rebuild := flag.Bool("rebuild", false, "replace an existing index")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	info := color.New(color.FgCyan).PrintfFunc()
	ok := color.New(color.FgGreen, color.Bold).PrintfFunc()
	warn := color.New(color.FgYellow).PrintfFunc()
	fail := color.New(color.FgRed, color.Bold).PrintfFunc()

	c, err := bootstrap.NewIngestion(ctx, cfg, sysLogger)
	if err != nil {
		fail("✗ %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if !*rebuild {
		gen, err := c.Indexer.Status(ctx)
		if err == nil {
			ok("✓ Index already built (%s, %d documents, %d chunks, %s)\n", gen.Backend, gen.Documents, gen.Chunks, gen.BuiltAt.Format("2006-01-02 15:04"))
			info("  use --rebuild to replace it\n")
			return
		}
		if !errors.Is(err, contract.ErrIndexNotFound) {
			fail("✗ Could not read index status: %v\n", err)
			os.Exit(1)
		}
	}

	abs, _ := filepath.Abs(*root)
	info("→ Building index from %s\n", abs)

	gen, err := c.Indexer.BuildIndex(ctx, *root)
	if errors.Is(err, service.ErrNoDocumentsFound) {
		warn("! No documents found in %s\n", abs)
		warn("  Create one folder per university (e.g. %s) and add .txt files.\n", filepath.Join(abs, "SMIU"))
		os.Exit(2)
	}
	if err != nil {
		fail("✗ Build failed: %v\n", err)
		os.Exit(1)
	}

	ok("✓ Loaded %d documents\n", gen.Documents)
	ok("✓ Created %d chunks\n", gen.Chunks)
	ok("✓ Published generation %s (%s)\n", gen.Id, gen.Backend)
}
