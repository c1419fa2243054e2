package aisvc

import (
	"context"
	"io"

	"github.com/kazadi/elimu/core/suggestion"
)

// ServiceMock replays canned chunks instead of calling the provider.
type ServiceMock struct {
	Chunks  []suggestion.Chunk
	OpenErr error             // returned by StreamSuggestion when set
	RecvErr error             // returned mid-stream once Chunks are drained, instead of io.EOF
	OnRecv  func(i int)       // called before the i-th chunk is handed out
	Prompts []string          // prompts seen so far
}

var _ suggestion.Completer = (*ServiceMock)(nil)

func NewServiceMock(chunks ...suggestion.Chunk) *ServiceMock {
	return &ServiceMock{Chunks: chunks}
}

func (svc *ServiceMock) StreamSuggestion(_ context.Context, prompt string) (suggestion.Stream, error) {
	if svc.OpenErr != nil {
		return nil, svc.OpenErr
	}
	svc.Prompts = append(svc.Prompts, prompt)
	return &streamMock{svc: svc}, nil
}

type streamMock struct {
	svc    *ServiceMock
	i      int
	closed bool
}

func (s *streamMock) Recv() (suggestion.Chunk, error) {
	if s.closed {
		return suggestion.Chunk{}, io.EOF
	}
	if s.i >= len(s.svc.Chunks) {
		if s.svc.RecvErr != nil {
			return suggestion.Chunk{}, s.svc.RecvErr
		}
		return suggestion.Chunk{}, io.EOF
	}
	if s.svc.OnRecv != nil {
		s.svc.OnRecv(s.i)
	}
	chunk := s.svc.Chunks[s.i]
	s.i++
	return chunk, nil
}

func (s *streamMock) Close() error {
	s.closed = true
	return nil
}
