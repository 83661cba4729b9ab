package media

import (
	"fmt"
	"strings"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
)

// TempoFactor returns the uniform scaling factor that stretches audio of
// actualDuration to targetDuration. A factor above 1.0 speeds playback up,
// below 1.0 slows it down. Pitch is preserved by the atempo filter.
func TempoFactor(actualDuration, targetDuration float64) float64 {
	return actualDuration / targetDuration
}

// TempoChain converts a tempo factor into one or two atempo passes.
// A single pass handles [0.5, 2.0]; chaining two passes extends the range to
// [0.25, 4.0]. Factors beyond the chainable range are clipped to the nearest
// bound and clipped=true is returned so the caller can warn about the
// residual duration mismatch.
func TempoChain(factor float64) (passes []float64, clipped bool) {
	switch {
	case factor < config.TempoChainMin:
		return []float64{config.TempoSinglePassMin, config.TempoSinglePassMin}, true
	case factor < config.TempoSinglePassMin:
		return []float64{config.TempoSinglePassMin, factor / config.TempoSinglePassMin}, false
	case factor <= config.TempoSinglePassMax:
		return []float64{factor}, false
	case factor <= config.TempoChainMax:
		return []float64{config.TempoSinglePassMax, factor / config.TempoSinglePassMax}, false
	default:
		return []float64{config.TempoSinglePassMax, config.TempoSinglePassMax}, true
	}
}

// atempoFilter renders an atempo filter chain for ffmpeg's -filter:a flag.
func atempoFilter(passes []float64) string {
	parts := make([]string, len(passes))
	for i, p := range passes {
		parts[i] = fmt.Sprintf("atempo=%.4f", p)
	}
	return strings.Join(parts, ",")
}
