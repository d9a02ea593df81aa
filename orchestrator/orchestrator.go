package orchestrator

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"shortsfactory/common"
	"shortsfactory/config"
	"shortsfactory/content"
	"shortsfactory/publish"
	"shortsfactory/render"
	"shortsfactory/speech"
	"shortsfactory/timeline"
	"shortsfactory/types"
	"shortsfactory/video"
)

// Orchestrator runs the full topic-to-video pipeline: script generation,
// narration, word alignment, frame rendering, muxing and optional upload.
type Orchestrator struct {
	content   *content.Chain
	synths    []speech.Synthesizer
	words     *timeline.Source
	sequencer *render.FrameSequencer
	uploader  *publish.Uploader
	artifacts *common.ArtifactStore
	state     *StateManager
	store     *ResultStore
}

// New wires an orchestrator from the environment. Every external dependency
// is optional except speech synthesis, which always has the free edge-tts
// fallback available.
func New(ctx context.Context, state *StateManager) *Orchestrator {
	var providers []content.Provider
	if key := config.GetEnvOrDefault("OPENAI_API_KEY", ""); key != "" {
		providers = append(providers, content.NewOpenAIProvider(key))
	}
	if key := config.GetEnvOrDefault("COHERE_API_KEY", ""); key != "" {
		providers = append(providers, content.NewCohereProvider(key))
	}
	providers = append(providers, content.NewTemplateProvider())

	var synths []speech.Synthesizer
	if key := config.GetEnvOrDefault("DEEPGRAM_API_KEY", ""); key != "" {
		synths = append(synths, speech.NewDeepgramSynthesizer(key))
	}
	synths = append(synths, speech.NewEdgeSynthesizer())

	var aligner timeline.Aligner
	if !config.GetEnvBool("WHISPER_DISABLED") {
		aligner = timeline.NewWhisperAligner()
	}

	var uploader *publish.Uploader
	if saFile := config.GetEnvOrDefault("YOUTUBE_SERVICE_ACCOUNT", ""); saFile != "" {
		u, err := publish.NewUploader(ctx, saFile)
		if err != nil {
			log.Printf("Warning: YouTube uploader unavailable: %v", err)
		} else {
			uploader = u
		}
	}

	artifacts, err := common.NewArtifactStoreFromEnv(ctx)
	if err != nil {
		log.Printf("Warning: S3 artifact store unavailable: %v", err)
	}

	return &Orchestrator{
		content:   content.NewChain(providers...),
		synths:    synths,
		words:     timeline.NewSource(aligner),
		sequencer: render.NewFrameSequencer(config.FrameRenderWorkers),
		uploader:  uploader,
		artifacts: artifacts,
		state:     state,
		store:     NewResultStoreFromEnv(ctx),
	}
}

// RunJob executes the pipeline for one job and returns its result. The
// result always carries the completed steps and any errors, even on failure.
func (o *Orchestrator) RunJob(ctx context.Context, job types.RenderJob) *types.RenderResult {
	result := &types.RenderResult{
		JobID:     job.JobID,
		Topic:     job.Topic,
		StartedAt: time.Now(),
	}
	defer func() {
		result.FinishedAt = time.Now()
		o.state.SetResult(job.JobID, result)
		if o.store != nil {
			if err := o.store.SaveResult(ctx, result); err != nil {
				log.Printf("Warning: failed to persist result for %s: %v", job.JobID, err)
			}
		}
	}()

	fail := func(step string, err error) *types.RenderResult {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", step, err))
		o.state.AddLog(job.JobID, fmt.Sprintf("%s failed: %v", step, err))
		log.Printf("Job %s failed at %s: %v", job.JobID, step, err)
		return result
	}
	done := func(step string) {
		result.StepsCompleted = append(result.StepsCompleted, step)
	}

	jobDir := filepath.Join(config.ScratchDir, job.JobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return fail("setup", err)
	}

	// Step 1: script and metadata
	o.state.SetStatus(job.JobID, StatusGenerating)
	generated, err := o.content.Generate(ctx, job.Topic, config.DefaultTargetDuration)
	if err != nil {
		return fail("content", err)
	}
	result.Provider = generated.Provider
	o.state.AddLog(job.JobID, fmt.Sprintf("script from %s: %q", generated.Provider, generated.Title))
	done("content")

	// Step 2: narration audio
	o.state.SetStatus(job.JobID, StatusSynthesizing)
	audioPath := filepath.Join(jobDir, "narration.mp3")
	voice, err := speech.Speak(ctx, o.synths, generated.Script, audioPath)
	if err != nil {
		return fail("tts", err)
	}
	o.state.AddLog(job.JobID, fmt.Sprintf("narration via %s", voice))
	done("tts")

	audioDuration, err := video.ProbeDuration(audioPath)
	if err != nil {
		return fail("probe", err)
	}
	result.AudioDuration = audioDuration
	if audioDuration > config.MaxVideoDuration {
		log.Printf("Job %s: narration runs %.1fs, capping video at %.0fs", job.JobID, audioDuration, config.MaxVideoDuration)
	}

	// Step 3: word timeline
	o.state.SetStatus(job.JobID, StatusAligning)
	words, err := o.words.Generate(ctx, audioPath, generated.Script, job.Language, audioDuration)
	if err != nil {
		return fail("timeline", err)
	}
	o.state.AddLog(job.JobID, fmt.Sprintf("timeline with %d words", len(words)))
	done("timeline")

	baseName := fmt.Sprintf("%s_%s", types.SanitizeTitle(generated.Title), job.JobID)
	timelinePath := filepath.Join(config.OutputDir, baseName+".timeline.json")
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fail("setup", err)
	}
	if err := timeline.WriteSidecar(words, timelinePath); err != nil {
		log.Printf("Warning: sidecar write failed for %s: %v", job.JobID, err)
	} else {
		result.TimelinePath = timelinePath
	}

	// Step 4: frames
	o.state.SetStatus(job.JobID, StatusRendering)
	scheme := render.SelectScheme(job.Topic)
	renderDuration := audioDuration
	if renderDuration > config.MaxVideoDuration {
		renderDuration = config.MaxVideoDuration
	}
	frameDir := filepath.Join(jobDir, "frames")
	frames, err := o.sequencer.Render(ctx, render.SequenceRequest{
		Timeline: words,
		Scheme:   scheme,
		Width:    config.VideoWidth,
		Height:   config.VideoHeight,
		FPS:      config.VideoFPS,
		Duration: renderDuration,
		FrameDir: frameDir,
	})
	if err != nil {
		return fail("frames", err)
	}
	o.state.AddLog(job.JobID, fmt.Sprintf("%d frames rendered (%s scheme)", len(frames), scheme.ID))
	done("frames")

	// Step 5: mux
	o.state.SetStatus(job.JobID, StatusMuxing)
	videoPath := filepath.Join(config.OutputDir, baseName+".mp4")
	err = video.Mux(video.MuxRequest{
		FramePattern: filepath.Join(frameDir, "frame_%06d.jpg"),
		AudioPath:    audioPath,
		FPS:          config.VideoFPS,
		OutputPath:   videoPath,
	})
	if err != nil {
		return fail("mux", err)
	}
	result.VideoPath = videoPath
	done("mux")

	// intermediates are no longer needed once the mp4 exists
	if err := os.RemoveAll(jobDir); err != nil {
		log.Printf("Warning: failed to clean scratch dir %s: %v", jobDir, err)
	}

	// Step 6: thumbnail
	thumbPath := filepath.Join(config.OutputDir, baseName+"_thumb.jpg")
	if err := render.RenderThumbnail(generated.Title, thumbPath, config.VideoWidth, config.VideoHeight, scheme); err != nil {
		log.Printf("Warning: thumbnail render failed for %s: %v", job.JobID, err)
	} else {
		result.ThumbnailPath = thumbPath
		done("thumbnail")
	}

	// Step 7: optional publish
	if job.Publish && o.uploader != nil {
		o.state.SetStatus(job.JobID, StatusUploading)
		url, err := o.uploader.UploadVideo(ctx, videoPath, types.VideoMetadata{
			Title:         generated.Title,
			Description:   generated.Description,
			Tags:          generated.Tags,
			PrivacyStatus: job.Privacy,
			ThumbnailPath: result.ThumbnailPath,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("upload: %v", err))
			log.Printf("Job %s: upload failed: %v", job.JobID, err)
		} else {
			result.YouTubeURL = url
			done("upload")
		}
	}

	// Step 8: optional artifact mirror
	if o.artifacts != nil {
		o.mirrorArtifacts(ctx, job.JobID, result)
	}

	result.Success = true
	o.state.AddLog(job.JobID, fmt.Sprintf("finished in %s", time.Since(result.StartedAt).Round(time.Second)))
	return result
}

// RunBatch renders one video per topic, pausing between videos to stay
// polite with the external APIs.
func (o *Orchestrator) RunBatch(ctx context.Context, topicList []string, publishVideos bool) []*types.RenderResult {
	results := make([]*types.RenderResult, 0, len(topicList))
	for i, topic := range topicList {
		if i > 0 {
			log.Printf("Waiting %s before next video", config.VideoBatchDelay)
			select {
			case <-time.After(config.VideoBatchDelay):
			case <-ctx.Done():
				return results
			}
		}

		job := types.RenderJob{
			JobID:   types.GenerateJobID(topic, time.Now()),
			Topic:   topic,
			Publish: publishVideos,
		}
		o.state.Create(job)
		results = append(results, o.RunJob(ctx, job))
	}
	return results
}

// StoredResult looks up a persisted result for a job the in-memory state
// does not track, typically after a restart. Returns nil when there is no
// result store or the ID is unknown.
func (o *Orchestrator) StoredResult(ctx context.Context, jobID string) *types.RenderResult {
	if o == nil || o.store == nil {
		return nil
	}
	result, err := o.store.LoadResult(ctx, jobID)
	if err != nil {
		log.Printf("Warning: stored result lookup failed for %s: %v", jobID, err)
		return nil
	}
	return result
}

func (o *Orchestrator) mirrorArtifacts(ctx context.Context, jobID string, result *types.RenderResult) {
	uploads := []struct {
		path        string
		contentType string
	}{
		{result.VideoPath, "video/mp4"},
		{result.ThumbnailPath, "image/jpeg"},
		{result.TimelinePath, "application/json"},
	}
	for _, u := range uploads {
		if u.path == "" {
			continue
		}
		uctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		key := o.artifacts.ObjectKey(jobID, u.path)
		if ok, err := o.artifacts.Exists(uctx, key); err == nil && ok {
			cancel()
			log.Printf("Artifact %s already mirrored, skipping", key)
			continue
		}
		if _, err := o.artifacts.UploadFile(uctx, jobID, u.path, u.contentType); err != nil {
			cancel()
			log.Printf("Warning: S3 mirror failed for %s: %v", u.path, err)
			continue
		}
		cancel()
		log.Printf("Mirrored %s to s3 key %s", filepath.Base(u.path), key)
	}
}
