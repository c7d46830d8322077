package testutil

import (
	"context"
	"sync"
)

// FakeAI is an ai.Client that answers with a fixed reply or error and records prompts.
type FakeAI struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	prompts []string
}

func NewFakeAI(reply string) *FakeAI {
	return &FakeAI{Reply: reply}
}

func (f *FakeAI) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *FakeAI) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

func (f *FakeAI) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}
