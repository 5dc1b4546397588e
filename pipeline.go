package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docqa/askdocs/docstore"
)

const (
	defaultTopK      = 3
	sourcePreviewLen = 200

	noDocumentsAnswer = "I don't have any documents to answer this question. Please upload some documents first."

	systemPrompt = "You are a helpful assistant. Answer questions based on the provided context. " +
		"Provide a clear and concise answer based solely on the context provided. " +
		"If the context doesn't contain relevant information, say so."
)

var ErrEmptyQuestion = errors.New("question must not be empty")

type searcher interface {
	Search(ctx context.Context, query string, topK int) ([]docstore.SearchResult, error)
}

type completer interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

// Source attributes part of an answer to an indexed chunk. Text holds at most
// sourcePreviewLen characters of the chunk.
type Source struct {
	File    string
	ChunkID int
	Text    string
}

// Answer is the pipeline result. Degraded marks an in-band failure message
// standing in for a real completion: callers still render Text, tests can
// tell the two apart.
type Answer struct {
	Text     string
	Degraded bool
	Sources  []Source
}

// Pipeline runs retrieval-augmented answering: search, assemble context,
// generate. Downstream failures never escape Answer; they degrade to an
// error message in the answer text.
type Pipeline struct {
	log   *slog.Logger
	store searcher
	llm   completer
	topK  int
}

func NewPipeline(store searcher, llm completer, topK int, log *slog.Logger) *Pipeline {
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Pipeline{
		log:   log,
		store: store,
		llm:   llm,
		topK:  topK,
	}
}

func (p *Pipeline) Answer(ctx context.Context, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	hits, err := p.store.Search(ctx, question, p.topK)
	if err != nil {
		p.log.Error("retrieval failed", "error", err)
		return &Answer{
			Text:     fmt.Sprintf("Error searching documents: %v", err),
			Degraded: true,
			Sources:  []Source{},
		}, nil
	}

	if len(hits) == 0 {
		return &Answer{Text: noDocumentsAnswer, Sources: []Source{}}, nil
	}

	answer := &Answer{Sources: collectSources(hits)}
	text, err := p.llm.Complete(ctx, systemPrompt, userPrompt(assembleContext(hits), question))
	if err != nil {
		p.log.Error("answer generation failed", "error", err)
		answer.Text = fmt.Sprintf("Error generating answer: %v", err)
		answer.Degraded = true
		return answer, nil
	}

	answer.Text = text
	return answer, nil
}

// assembleContext renders hits into the grounding block passed to the model,
// preserving the retriever's relevance order.
func assembleContext(hits []docstore.SearchResult) string {
	parts := make([]string, 0, len(hits))
	for i, h := range hits {
		parts = append(parts, fmt.Sprintf("[Source %d from %s]:\n%s", i+1, h.File, h.Text))
	}

	return strings.Join(parts, "\n\n")
}

func userPrompt(contextBlock string, question string) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, question)
}

func collectSources(hits []docstore.SearchResult) []Source {
	sources := make([]Source, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, Source{
			File:    h.File,
			ChunkID: h.ChunkID,
			Text:    truncate(h.Text, sourcePreviewLen),
		})
	}

	return sources
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
