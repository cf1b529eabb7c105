package util

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

var (
	ErrQueueClosed      = errors.New("pool: queue closed")
	ErrAllocationFailed = errors.New("pool: allocation failed")
)

type WorkItem struct {
	run    func() error
	signal Signal
	err    error
}

func NewWorkItem(run func() error, signal Signal) *WorkItem {
	return &WorkItem{run: run, signal: signal}
}

// Err is only meaningful after the item's signal fired.
func (w *WorkItem) Err() error {
	return w.err
}

func (w *WorkItem) execute() {
	defer w.signal.Set()
	defer func() {
		if r := recover(); r != nil {
			w.err = fmt.Errorf("work item panic: %v", r)
		}
	}()
	w.err = w.run()
}

type WorkerPool struct {
	threads int
	limit   int

	mutex  sync.Mutex
	cond   *sync.Cond
	queue  []*WorkItem
	closed bool
	wg     sync.WaitGroup
}

// NewWorkerPool starts threads workers, one per CPU when threads is not
// positive. A positive limit caps the number of queued items.
func NewWorkerPool(threads, limit int) *WorkerPool {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	p := &WorkerPool{threads: threads, limit: limit}
	p.cond = sync.NewCond(&p.mutex)
	p.wg.Add(threads)
	for i := 0; i < threads; i++ {
		go p.loop()
	}
	return p
}

func (p *WorkerPool) Threads() int {
	return p.threads
}

func (p *WorkerPool) Spawn(item *WorkItem) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return ErrQueueClosed
	}
	if p.limit > 0 && len(p.queue) >= p.limit {
		return fmt.Errorf("%w: queue limit %d reached", ErrAllocationFailed, p.limit)
	}
	p.queue = append(p.queue, item)
	p.cond.Signal()
	return nil
}

// Shutdown rejects new items and returns once every queued item has run.
func (p *WorkerPool) Shutdown() {
	p.mutex.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mutex.Unlock()
	p.wg.Wait()
}

func (p *WorkerPool) loop() {
	defer p.wg.Done()

	for {
		p.mutex.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mutex.Unlock()
			return
		}
		item := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mutex.Unlock()

		item.execute()
	}
}
