// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"cogentcore.org/core/gi"
)

// synapseState is the on-disk shape of one synapse: its pre/post wiring and
// the delay class it belongs to are part of Connectivity, which the loader assumes
// is already built identically to the one used when saving, so only the
// fields that actually adapt with learning are persisted.
type synapseState struct {
	Wt       float32 `json:"wt"`
	WtChange float32 `json:"wtChange"`
}

type neuronState struct {
	Voltage  float32 `json:"v"`
	Recovery float32 `json:"u"`
}

type weightsFile struct {
	Neurons  []neuronState  `json:"neurons"`
	Synapses []synapseState `json:"synapses"`
}

// SaveWeightsJSON writes every synapse's weight and accumulated change, and
// every neuron's voltage/recovery, to a JSON file. A ".gz" extension
// gzip-compresses the output, matching the teacher's SaveWtsJSON convention.
func (s *SimState) SaveWeightsJSON(filename gi.Filename) error {
	fp, err := os.Create(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()

	wf := weightsFile{
		Neurons:  make([]neuronState, len(s.Neurons)),
		Synapses: make([]synapseState, len(s.Synapses)),
	}
	for i := range s.Neurons {
		wf.Neurons[i] = neuronState{Voltage: s.Neurons[i].Voltage, Recovery: s.Neurons[i].Recovery}
	}
	for i := range s.Synapses {
		wf.Synapses[i] = synapseState{Wt: s.Synapses[i].Wt, WtChange: s.Synapses[i].WtChange}
	}

	if filepath.Ext(string(filename)) == ".gz" {
		gzr := gzip.NewWriter(fp)
		err = json.NewEncoder(gzr).Encode(&wf)
		gzr.Close()
		return err
	}
	bw := bufio.NewWriter(fp)
	err = json.NewEncoder(bw).Encode(&wf)
	bw.Flush()
	return err
}

// LoadWeightsJSON reads a file written by SaveWeightsJSON back into this
// SimState's Neurons and Synapses. The caller must have built Connectivity
// identically to the run that produced the file -- array lengths must match
// exactly, or ErrWeightsSizeMismatch is returned.
func (s *SimState) LoadWeightsJSON(filename gi.Filename) error {
	fp, err := os.Open(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()

	var wf weightsFile
	if filepath.Ext(string(filename)) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			return err
		}
		defer gzr.Close()
		err = json.NewDecoder(gzr).Decode(&wf)
		if err != nil {
			return err
		}
	} else {
		if err := json.NewDecoder(bufio.NewReader(fp)).Decode(&wf); err != nil {
			return err
		}
	}

	if len(wf.Neurons) != len(s.Neurons) || len(wf.Synapses) != len(s.Synapses) {
		return &TickError{Code: ErrWeightsSizeMismatch, Kernel: "LoadWeightsJSON", SimTime: s.SimTime}
	}
	for i := range wf.Neurons {
		s.Neurons[i].Voltage = wf.Neurons[i].Voltage
		s.Neurons[i].Recovery = wf.Neurons[i].Recovery
	}
	for i := range wf.Synapses {
		s.Synapses[i].Wt = wf.Synapses[i].Wt
		s.Synapses[i].WtChange = wf.Synapses[i].WtChange
	}
	return nil
}
