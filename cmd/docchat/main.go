// Command docchat answers questions about local documents from the
// terminal, grounding a chat model on passages retrieved from a
// per-document vector index.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/ai"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/config/file"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/index/flat"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/watcher"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driving/cli"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/core/services"
	"github.com/docchat-labs/docchat-cli/internal/logger"
	"github.com/docchat-labs/docchat-cli/internal/normalisers/pdf"
	"github.com/docchat-labs/docchat-cli/internal/normalisers/plaintext"
	"github.com/docchat-labs/docchat-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "docchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is a convenience, not a requirement.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := configStore.Config()

	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("embedding provider: %w", err)
	}
	defer embedder.Close()

	llm, err := ai.CreateLLMService(cfg.LLM)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	if llm != nil {
		defer llm.Close()
	}

	vectors, err := flat.NewStore(cfg.Storage.VectorDir)
	if err != nil {
		return fmt.Errorf("vector store: %w", err)
	}

	transcripts, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("transcript store: %w", err)
	}
	defer transcripts.Close()

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("prompt store: %w", err)
	}

	indexSvc := services.NewIndexService(
		[]driven.Normaliser{pdf.New()},
		plaintext.New(),
		chunker.New(
			chunker.WithChunkSize(cfg.Chunker.Size),
			chunker.WithOverlap(cfg.Chunker.Overlap),
		),
		embedder,
		vectors,
	)
	retriever := services.NewRetriever(indexSvc, embedder, cfg.Retrieval.TopK)

	// Watched documents are re-indexed on their next use after a change.
	var (
		indexer   driving.Indexer          = indexSvc
		retrieval driving.RetrievalService = retriever
	)
	if w, err := watcher.New(indexSvc); err != nil {
		logger.Warn("File watching unavailable: %v", err)
	} else {
		defer w.Close()
		indexer = watcher.WrapIndexer(indexSvc, w)
		retrieval = watcher.WrapRetrieval(retriever, w)
	}

	chat := services.NewChatService(
		retrieval, llm, transcripts,
		cfg.Retrieval.TopK, cfg.Chat.HistoryLimit,
		services.WithPromptStore(prompts),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Retrieval: retrieval,
		Indexer:   indexer,
		Chat:      chat,
		Sessions:  chat,
		LLMCheck:  func() error { return ai.ValidateLLMService(llm) },
	})

	return cli.Execute()
}
