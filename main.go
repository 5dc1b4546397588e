package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	gemini "github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"
	openai "github.com/amikos-tech/chroma-go/pkg/embeddings/openai"
	"github.com/docqa/askdocs/docstore"
	"github.com/docqa/askdocs/llm"
	"github.com/docqa/askdocs/readers"
	"github.com/mark3labs/mcp-go/server"
)

func createEmbeddingFunction(cfg *Config) (embeddings.EmbeddingFunction, error) {
	if cfg.OpenAI != nil {
		ef, err := openai.NewOpenAIEmbeddingFunction(
			cfg.OpenAI.ApiKey,
			openai.WithModel(openai.EmbeddingModel(cfg.OpenAI.Model)))
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI embedding function: %w", err)
		}

		return ef, nil
	}

	if cfg.Gemini != nil {
		ef, err := gemini.NewGeminiEmbeddingFunction(
			gemini.WithAPIKey(cfg.Gemini.ApiKey),
			gemini.WithDefaultModel(embeddings.EmbeddingModel(cfg.Gemini.Model)))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini embedding function: %w", err)
		}

		return ef, nil
	}

	return nil, errors.New("invalid embeddings provider configuration")
}

func initStore(cfg *Config, reset bool) (docstore.Store, error) {
	if cfg.Store == "memory" {
		return docstore.NewMemoryStore(), nil
	}

	ef, err := createEmbeddingFunction(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding function: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := docstore.NewChromaStore(ctx, docstore.ChromaStoreConfig{
		BaseURL:       cfg.ChromaAddr,
		EmbeddingFunc: ef,
		RequestSize:   cfg.RequestSize,
		Reset:         reset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Chroma doc store: %w", err)
	}

	return store, nil
}

func main() {
	reset := flag.Bool("reset", false, "Reinitialize the index from scratch if set")
	cfgPath := flag.String("config", "cfg/config.yaml", "Configuration file for the server")
	flag.Parse()

	cfg, err := readConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %s", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	store, err := initStore(cfg, *reset)
	if err != nil {
		log.Fatal(err)
	}

	generator, err := llm.NewClient(llm.Config{
		Provider:    llm.Provider(cfg.LLM.Provider),
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.ApiKey,
		BaseURL:     cfg.LLM.BaseURL,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		log.Fatal(err)
	}

	pipeline := NewPipeline(store, generator, cfg.Results, logger)
	reg := NewDocRegistry(store, pipeline, &DefaultChunkifier{
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
	}, logger)

	err = reg.RegisterReader(
		&readers.TxtFileReader{},
		&readers.PdfFileReader{},
		&readers.DocxFileReader{},
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DocRoot != "" {
		watcher := NewDropWatcher(reg, cfg.DocRoot,
			time.Duration(cfg.MergeEventsMs)*time.Millisecond, logger)

		go func() {
			err := watcher.Sync(ctx)
			if err != nil {
				log.Fatal(err)
			}

			err = watcher.Watch(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
		}()
	}

	srv := NewAskServer(reg)
	sse := server.NewSSEServer(srv, server.WithBaseURL(fmt.Sprintf("http://%s", cfg.ServerAddr)))
	log.Println(sse.Start(cfg.ServerAddr))
}
