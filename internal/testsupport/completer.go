package testsupport

import (
	"context"
	"errors"
)

// StubCompleter implements the summarize gateway's completer contract with
// canned responses.
type StubCompleter struct {
	Response string
	Err      error

	// Calls records the prompts received, in order.
	Calls []string
	// FileCalls records the MIME types of file completions, in order.
	FileCalls []string
}

// ErrRemote simulates a remote service failure.
var ErrRemote = errors.New("simulated remote failure")

func (s *StubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.Calls = append(s.Calls, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

func (s *StubCompleter) CompleteWithFile(_ context.Context, prompt, mimeType, _ string) (string, error) {
	s.Calls = append(s.Calls, prompt)
	s.FileCalls = append(s.FileCalls, mimeType)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}
