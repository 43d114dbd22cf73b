// Package telemetry writes a per-frame CSV trace of the camera. The trace
// is write-only; nothing reads it back.
package telemetry

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/joomcode/errorx"

	"github.com/spaghettifunk/gridflight/engine/containers"
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/renderer/components"
)

// FlightRecord is one CSV row.
type FlightRecord struct {
	Session string  `csv:"session"`
	Frame   uint64  `csv:"frame"`
	PosX    float64 `csv:"pos_x"`
	PosY    float64 `csv:"pos_y"`
	PosZ    float64 `csv:"pos_z"`
	QuatX   float64 `csv:"quat_x"`
	QuatY   float64 `csv:"quat_y"`
	QuatZ   float64 `csv:"quat_z"`
	QuatW   float64 `csv:"quat_w"`
	Pitch   float64 `csv:"pitch"`
	Speed   float64 `csv:"speed"`
	Wrapped bool    `csv:"wrapped"`
}

// FlightRecorder buffers records and writes them in batches.
// A nil recorder accepts and drops everything.
type FlightRecorder struct {
	session       uuid.UUID
	out           io.Writer
	closer        io.Closer
	buffer        *containers.RingQueue[FlightRecord]
	headerWritten bool
	written       uint64
}

// NewFlightRecorder creates the CSV file at path. Returns nil if path is
// empty (recording disabled).
func NewFlightRecorder(path string, buffer int) (*FlightRecorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errorx.Decorate(err, "creating telemetry directory")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errorx.Decorate(err, "creating %s", path)
	}
	r := NewFlightRecorderWriter(f, buffer)
	r.closer = f
	core.LogInfo("recording flight %s to %s", r.session, path)
	return r, nil
}

// NewFlightRecorderWriter records to an arbitrary writer.
func NewFlightRecorderWriter(out io.Writer, buffer int) *FlightRecorder {
	return &FlightRecorder{
		session: uuid.New(),
		out:     out,
		buffer:  containers.NewRingQueue[FlightRecord](buffer),
	}
}

func (r *FlightRecorder) Session() uuid.UUID {
	if r == nil {
		return uuid.Nil
	}
	return r.session
}

// Written is the number of records flushed so far.
func (r *FlightRecorder) Written() uint64 {
	if r == nil {
		return 0
	}
	return r.written
}

// RecordCamera snapshots the camera for the given frame.
func (r *FlightRecorder) RecordCamera(frame uint64, camera *components.Camera, wrapped bool) error {
	if r == nil {
		return nil
	}
	pos := camera.Position()
	q := camera.Orientation()
	return r.Record(FlightRecord{
		Frame:   frame,
		PosX:    pos.X,
		PosY:    pos.Y,
		PosZ:    pos.Z,
		QuatX:   q.X,
		QuatY:   q.Y,
		QuatZ:   q.Z,
		QuatW:   q.W,
		Pitch:   camera.Pitch(),
		Speed:   camera.Speed(),
		Wrapped: wrapped,
	})
}

// Record queues a record, flushing first when the buffer is full.
func (r *FlightRecorder) Record(record FlightRecord) error {
	if r == nil {
		return nil
	}
	record.Session = r.session.String()
	if r.buffer.IsFull() {
		if err := r.Flush(); err != nil {
			return err
		}
	}
	return r.buffer.Enqueue(record)
}

// Flush writes the buffered records. They stay queued until the write
// succeeds, so a failed flush can be retried.
func (r *FlightRecorder) Flush() error {
	if r == nil || r.buffer.IsEmpty() {
		return nil
	}
	records := r.buffer.Items()

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.out); err != nil {
			return errorx.Decorate(err, "writing flight records")
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
			return errorx.Decorate(err, "writing flight records")
		}
	}
	r.buffer.Drain()
	r.written += uint64(len(records))
	return nil
}

func (r *FlightRecorder) Close() error {
	if r == nil {
		return nil
	}
	err := r.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); cerr != nil && err == nil {
			err = errorx.Decorate(cerr, "closing flight log")
		}
	}
	core.LogInfo("flight %s recorded %d frames", r.session, r.written)
	return err
}
