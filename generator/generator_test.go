package generator

import (
	"context"
	"errors"
	"sync"

	"mindful-chat/models"
)

type fakeGenerator struct {
	mu       sync.Mutex
	provider string
	reply    string
	err      error
	calls    int
	requests []Request
}

func (f *fakeGenerator) Provider() string {
	if f.provider == "" {
		return "fake"
	}
	return f.provider
}

func (f *fakeGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &Result{Text: f.reply, ModelName: "fake-model", TotalTokens: 7}, nil
}

type fakeLogWriter struct {
	mu      sync.Mutex
	entries []models.AILog
	err     error
}

func (f *fakeLogWriter) Insert(ctx context.Context, log models.AILog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, log)
	return nil
}

var errBoom = errors.New("boom")
