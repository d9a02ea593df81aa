package config

import "time"

// Video Output Constants
const (
	// VideoWidth is the output frame width for vertical shorts
	VideoWidth = 1080

	// VideoHeight is the output frame height for vertical shorts
	VideoHeight = 1920

	// VideoFPS is the output frame rate
	VideoFPS = 30

	// VideoCodec is the codec used for video encoding
	VideoCodec = "libx264"

	// AudioCodec is the codec used for audio encoding
	AudioCodec = "aac"

	// AudioBitrate is the target audio bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// PixelFormat is required for broad player compatibility
	PixelFormat = "yuv420p"

	// MaxVideoDuration is the maximum allowed short length in seconds
	MaxVideoDuration = 60.0

	// DefaultTargetDuration is the narration length requested from providers
	DefaultTargetDuration = 45.0
)

// Caption Rendering Constants
const (
	// CaptionMargin is the horizontal padding kept clear on each side
	CaptionMargin = 80

	// CaptionStrokeRadius is the black outline thickness in pixels
	CaptionStrokeRadius = 4

	// CaptionGlowRadius is the soft halo offset behind the stroke
	CaptionGlowRadius = 1

	// JPEGQuality is the quality setting for rendered frames
	JPEGQuality = 85

	// ParticleCount is the number of drifting particles per frame
	ParticleCount = 30
)

// CaptionFontSizes are tried largest first until the word fits the frame
var CaptionFontSizes = []int{140, 120, 100, 85, 70, 60, 50, 45}

// Video Processing Constants
const (
	// FrameRenderWorkers is the number of goroutines rasterizing frames
	FrameRenderWorkers = 4

	// VideoBatchDelay is the wait time between videos in batch mode
	VideoBatchDelay = 30 * time.Second

	// AlignTimeout bounds a single word alignment subprocess
	AlignTimeout = 5 * time.Minute

	// TTSTimeout bounds a single speech synthesis call
	TTSTimeout = 2 * time.Minute

	// MinAudioBytes is the floor below which synthesis output is rejected
	MinAudioBytes = 10 * 1024

	// MinVideoBytes is the floor below which a muxed file is rejected
	MinVideoBytes = 50 * 1024

	// UploadMaxRetries is the retry cap for transient upload failures
	UploadMaxRetries = 3
)

// Directory Constants
const (
	// OutputDir is the directory for finished videos and sidecars
	OutputDir = "output"

	// ScratchDir holds per-job intermediate frames and audio
	ScratchDir = "output/tmp"
)

// YouTube Constants
const (
	// YouTubeCategoryID for Science & Technology
	YouTubeCategoryID = "28"

	// YouTubePrivacyStatus sets default video visibility
	YouTubePrivacyStatus = "private"
)

// Content Constants
const (
	// MaxTitleLength is the maximum character length for video titles
	MaxTitleLength = 100

	// MaxScriptChars caps generated narration scripts
	MaxScriptChars = 1500

	// MinScriptChars rejects scripts too short to narrate
	MinScriptChars = 40
)
