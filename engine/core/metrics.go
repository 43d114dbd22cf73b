package core

const AVG_COUNT uint8 = 30

type MetricsState struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	TotalFrames        uint64
	AccumulatedFrameMS float64
	FPS                float64
}

var metricsState *MetricsState = nil

// MetricsInitialize resets all counters.
func MetricsInitialize() error {
	metricsState = &MetricsState{
		MStimes: [AVG_COUNT]float64{0},
	}
	return nil
}

// MetricsUpdate records one frame that took frameElapsedTime seconds.
func MetricsUpdate(frameElapsedTime float64) {
	if metricsState == nil {
		return
	}
	// Calculate frame ms average
	frameMS := (frameElapsedTime * 1000.0)
	metricsState.MStimes[metricsState.FrameAVGCounter] = frameMS
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += metricsState.MStimes[i]
		}
		metricsState.MSavg = sum / float64(AVG_COUNT)
	}
	metricsState.FrameAVGCounter++
	metricsState.FrameAVGCounter %= AVG_COUNT

	// Count all Frames.
	metricsState.Frames++
	metricsState.TotalFrames++

	// Calculate Frames per second.
	metricsState.AccumulatedFrameMS += frameMS
	if metricsState.AccumulatedFrameMS >= 1000 {
		metricsState.FPS = float64(metricsState.Frames)
		metricsState.AccumulatedFrameMS -= 1000
		metricsState.Frames = 0
	}
}

func MetricsFPS() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.FPS
}

func MetricsFrameTime() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.MSavg
}

func MetricsFrame() (float64, float64) {
	return MetricsFPS(), MetricsFrameTime()
}

func MetricsTotalFrames() uint64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.TotalFrames
}
