package filtergraph

import (
	"fmt"
	"strconv"
	"strings"
)

// Audio normalization constants. Every segment's audio (real or
// synthesized) is brought to this format so concatenation is uniform.
const (
	SampleRate    = 44100
	ChannelLayout = "stereo"
	SampleFormat  = "fltp"
	FrameRate     = 30
)

// MusicVolume attenuates background tracks so original dialogue stays
// dominant in the mix.
const MusicVolume = 0.2

func secs(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Scale fits the frame within width x height preserving aspect ratio.
func Scale(width, height int) Filter {
	return Filter{Name: "scale", Args: []string{
		fmt.Sprintf("w=%d", width),
		fmt.Sprintf("h=%d", height),
		"force_original_aspect_ratio=decrease",
	}}
}

// Pad letterboxes the scaled frame to exactly width x height, centered on
// black.
func Pad(width, height int) Filter {
	return Filter{Name: "pad", Args: []string{
		strconv.Itoa(width),
		strconv.Itoa(height),
		"(ow-iw)/2",
		"(oh-ih)/2",
		"color=black",
	}}
}

// SetSAR fixes the sample aspect ratio after padding.
func SetSAR() Filter {
	return Filter{Name: "setsar", Args: []string{"1"}}
}

// FPS normalizes the frame rate to the fixed output rate.
func FPS() Filter {
	return Filter{Name: "fps", Args: []string{strconv.Itoa(FrameRate)}}
}

// TrimVideo keeps [start, end) of the video stream.
func TrimVideo(start, end float64) Filter {
	return Filter{Name: "trim", Args: []string{
		"start=" + secs(start),
		"end=" + secs(end),
	}}
}

// ResetPTS rebases video timestamps to zero after a trim.
func ResetPTS() Filter {
	return Filter{Name: "setpts", Args: []string{"PTS-STARTPTS"}}
}

// Aresample resamples audio to the fixed output rate.
func Aresample() Filter {
	return Filter{Name: "aresample", Args: []string{strconv.Itoa(SampleRate)}}
}

// AFormat normalizes sample format and channel layout.
func AFormat() Filter {
	return Filter{Name: "aformat", Args: []string{
		"sample_fmts=" + SampleFormat,
		"channel_layouts=" + ChannelLayout,
	}}
}

// TrimAudio keeps [start, end) of the audio stream.
func TrimAudio(start, end float64) Filter {
	return Filter{Name: "atrim", Args: []string{
		"start=" + secs(start),
		"end=" + secs(end),
	}}
}

// ResetAPTS rebases audio timestamps to zero after a trim.
func ResetAPTS() Filter {
	return Filter{Name: "asetpts", Args: []string{"PTS-STARTPTS"}}
}

// Silence generates a silent audio source in the normalized format. It is
// unbounded and must be followed by TrimAudio to the segment's duration.
func Silence() Filter {
	return Filter{Name: "anullsrc", Args: []string{
		"channel_layout=" + ChannelLayout,
		"sample_rate=" + strconv.Itoa(SampleRate),
	}}
}

// Concat joins n segments' streams back to back. withAudio selects whether
// each segment contributes a video+audio pair or video only.
func Concat(n int, withAudio bool) Filter {
	audio := "0"
	if withAudio {
		audio = "1"
	}
	return Filter{Name: "concat", Args: []string{
		fmt.Sprintf("n=%d", n),
		"v=1",
		"a=" + audio,
	}}
}

// Volume attenuates an audio stream by a linear factor.
func Volume(factor float64) Filter {
	return Filter{Name: "volume", Args: []string{secs(factor)}}
}

// AMix mixes two audio streams; duration=first keeps the output at the
// first input's length so music never extends the cut.
func AMix() Filter {
	return Filter{Name: "amix", Args: []string{
		"inputs=2",
		"duration=first",
		"dropout_transition=0",
	}}
}

// Placement selects the vertical position of overlay text.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementCenter Placement = "center"
	PlacementBottom Placement = "bottom"
)

// yExpr returns the drawtext y expression for the placement. Bottom is the
// default for unrecognized values.
func (p Placement) yExpr() string {
	switch p {
	case PlacementTop:
		return "h*0.08"
	case PlacementCenter:
		return "(h-text_h)/2"
	default:
		return "h*0.85"
	}
}

// DrawText burns centered overlay text onto the video with a black outline
// for legibility.
func DrawText(text string, placement Placement, fontSize int, fontColor string) Filter {
	return Filter{Name: "drawtext", Args: []string{
		"text='" + EscapeText(text) + "'",
		fmt.Sprintf("fontsize=%d", fontSize),
		"fontcolor=" + fontColor,
		"borderw=2",
		"bordercolor=black",
		"x=(w-text_w)/2",
		"y=" + placement.yExpr(),
	}}
}

// EscapeText escapes the three characters with special meaning in the
// engine's text-filter syntax. Backslashes go first so the escapes added
// for quotes and colons are not themselves re-escaped.
func EscapeText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `'`, `\'`)
	text = strings.ReplaceAll(text, `:`, `\:`)
	return text
}
