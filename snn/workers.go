// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/emer/emergent/v2/timer"
)

// ChunkJob is a kernel function applied to one thread's share of the
// static-load partition.
type ChunkJob func(tid int, chunks []Chunk) error

// chunkFunChan is a channel carrying kernel jobs to one worker goroutine,
// generalizing leabra.NetworkBase's LayFunChan to operate over neuron
// chunks instead of layers.
type chunkFunChan chan ChunkJob

// Workers is a persistent goroutine-per-thread pool that partitions the
// static load across NThreads workers and runs each kernel as a barrier:
// the host blocks on Wait until every thread finishes, mirroring the
// implicit global barrier between kernel launches (§5).
type Workers struct {
	NThreads int

	thrChunks []Chunk
	thrBounds [][2]int // [start,end) into thrChunks per thread, round-robin assigned

	chans     []chunkFunChan
	thrErrs   []error
	thrTimes  []timer.Time
	funTimes  map[string]*timer.Time
	waitGp    sync.WaitGroup
}

// NewWorkers builds the per-thread chunk assignment (round-robin over the
// partition, so large and small groups both spread evenly across threads)
// but does not start the goroutines -- call Start for that.
func NewWorkers(chunks []Chunk, nThreads int) *Workers {
	if nThreads < 1 {
		nThreads = 1
	}
	w := &Workers{
		NThreads: nThreads,
		thrChunks: make([]Chunk, len(chunks)),
		thrBounds: make([][2]int, nThreads),
		chans:     make([]chunkFunChan, nThreads),
		thrErrs:   make([]error, nThreads),
		thrTimes:  make([]timer.Time, nThreads),
		funTimes:  make(map[string]*timer.Time),
	}

	perThr := make([][]Chunk, nThreads)
	for i, c := range chunks {
		t := i % nThreads
		perThr[t] = append(perThr[t], c)
	}
	pos := 0
	for t := 0; t < nThreads; t++ {
		start := pos
		for _, c := range perThr[t] {
			w.thrChunks[pos] = c
			pos++
		}
		w.thrBounds[t] = [2]int{start, pos}
	}
	return w
}

// NThreadsUsed returns the configured thread count.
func (w *Workers) NThreadsUsed() int { return w.NThreads }

// chunksFor returns thread tid's assigned chunks.
func (w *Workers) chunksFor(tid int) []Chunk {
	b := w.thrBounds[tid]
	return w.thrChunks[b[0]:b[1]]
}

// Start spins up the persistent worker goroutines, one per thread.
func (w *Workers) Start() {
	if w.NThreads <= 1 {
		return
	}
	fmt.Printf("snn.Workers: NThreads: %d\tgo max procs: %d\tnum cpu: %d\n",
		w.NThreads, runtime.GOMAXPROCS(0), runtime.NumCPU())
	for t := 0; t < w.NThreads; t++ {
		w.chans[t] = make(chunkFunChan)
		go w.worker(t)
	}
}

// worker ranges over its channel, running each job on its chunk slice,
// recording the error (if any) and signaling the host's WaitGroup.
func (w *Workers) worker(tid int) {
	for job := range w.chans[tid] {
		w.thrTimes[tid].Start()
		w.thrErrs[tid] = job(tid, w.chunksFor(tid))
		w.thrTimes[tid].Stop()
		w.waitGp.Done()
	}
}

// Stop closes every thread's channel, ending its goroutine.
func (w *Workers) Stop() {
	if w.NThreads <= 1 {
		return
	}
	for t := 0; t < w.NThreads; t++ {
		close(w.chans[t])
	}
}

// Run dispatches job to every thread and blocks until all have finished,
// returning the first non-nil error encountered (kernel semantics: any
// thread's failure corrupts the whole tick). With NThreads<=1 it runs the
// job directly in the caller's goroutine.
func (w *Workers) Run(name string, job ChunkJob) error {
	w.funTimerStart(name)
	defer w.funTimerStop(name)

	if w.NThreads <= 1 {
		return job(0, w.thrChunks)
	}
	for t := 0; t < w.NThreads; t++ {
		w.waitGp.Add(1)
		w.chans[t] <- job
	}
	w.waitGp.Wait()
	for _, err := range w.thrErrs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Workers) funTimerStart(name string) {
	ft, ok := w.funTimes[name]
	if !ok {
		ft = &timer.Time{}
		w.funTimes[name] = ft
	}
	ft.Start()
}

func (w *Workers) funTimerStop(name string) {
	w.funTimes[name].Stop()
}

// TimerReport prints per-kernel and, if threaded, per-thread timing,
// mirroring leabra.NetworkBase.TimerReport -- useful for seeing whether
// the static-load partitioner is balancing work evenly across threads.
func (w *Workers) TimerReport(name string) {
	fmt.Printf("TimerReport: %v, NThreads: %v\n", name, w.NThreads)
	fmt.Printf("\t%13s \t%7s\t%7s\n", "Kernel", "Secs", "Pct")
	fnms := make([]string, 0, len(w.funTimes))
	for k := range w.funTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	tot := 0.0
	secs := make([]float64, len(fnms))
	for i, fn := range fnms {
		secs[i] = w.funTimes[fn].TotalSecs()
		tot += secs[i]
	}
	for i, fn := range fnms {
		pct := 0.0
		if tot > 0 {
			pct = 100 * (secs[i] / tot)
		}
		fmt.Printf("\t%13s \t%7.3f\t%7.1f\n", fn, secs[i], pct)
	}
	fmt.Printf("\t%13s \t%7.3f\n", "Total", tot)

	if w.NThreads <= 1 {
		return
	}
	fmt.Printf("\n\tThr\tSecs\tPct\n")
	tot = 0.0
	thrSecs := make([]float64, w.NThreads)
	for t := 0; t < w.NThreads; t++ {
		thrSecs[t] = w.thrTimes[t].TotalSecs()
		tot += thrSecs[t]
	}
	for t := 0; t < w.NThreads; t++ {
		pct := 0.0
		if tot > 0 {
			pct = 100 * (thrSecs[t] / tot)
		}
		fmt.Printf("\t%v \t%7.3f\t%7.1f\n", t, thrSecs[t], pct)
	}
}
