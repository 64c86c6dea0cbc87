// flight/record.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	"io"
	"iter"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/control"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/util"
)

const (
	recordingKind    = "flight"
	recordingVersion = 1
)

// Frame is a single recorded tick.
type Frame struct {
	Control control.State `msgpack:"control"`
	Output  Output        `msgpack:"output"`
}

// Recorder writes a stream of frames, msgpack-encoded and zstd-compressed.
type Recorder struct {
	w *util.CompressedStreamWriter[Frame]
}

func NewRecorder(w io.Writer) (*Recorder, error) {
	sw, err := util.NewCompressedStreamWriter[Frame](w, recordingKind, recordingVersion)
	if err != nil {
		return nil, err
	}
	return &Recorder{w: sw}, nil
}

// Record encodes a frame immediately, so the solver is free to reuse
// out's buffers once it returns.
func (r *Recorder) Record(ctl control.State, out Output) error {
	f := Frame{Control: ctl, Output: out}
	return r.w.Write(&f)
}

func (r *Recorder) Frames() int {
	return r.w.Count()
}

func (r *Recorder) Close() error {
	return r.w.Close()
}

// ReadRecording returns an iterator over the frames in a recording made
// by a Recorder.
func ReadRecording(rd io.Reader) iter.Seq2[Frame, error] {
	return util.ReadCompressedStream[Frame](rd, recordingKind, recordingVersion)
}

// LoadRecording reads all of the frames in a recording.
func LoadRecording(rd io.Reader) ([]Frame, error) {
	var frames []Frame
	for f, err := range ReadRecording(rd) {
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return nil, ErrNoRecording
	}
	return frames, nil
}
