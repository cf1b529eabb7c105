package util

import "sync"

type Signal interface {
	Set()
}

// CompletionSignal is a one-shot auto-reset event. Set never blocks and is
// remembered until a Wait consumes it.
type CompletionSignal struct {
	ch chan struct{}
}

func NewCompletionSignal() *CompletionSignal {
	return &CompletionSignal{ch: make(chan struct{}, 1)}
}

func (s *CompletionSignal) Set() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

func (s *CompletionSignal) Wait() {
	<-s.ch
}

// CompletionGroup is one signal shared by a whole dispatch batch, each item
// calls Set once and Wait returns after all of them did.
type CompletionGroup struct {
	wg sync.WaitGroup
}

func NewCompletionGroup() *CompletionGroup {
	return &CompletionGroup{}
}

func (g *CompletionGroup) Add(n int) {
	g.wg.Add(n)
}

func (g *CompletionGroup) Set() {
	g.wg.Done()
}

func (g *CompletionGroup) Wait() {
	g.wg.Wait()
}
