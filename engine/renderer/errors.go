package renderer

import "github.com/joomcode/errorx"

var (
	Errors = errorx.NewNamespace("renderer")

	FrameOrder     = Errors.NewType("frame_order")
	MalformedBatch = Errors.NewType("malformed_batch")
)
