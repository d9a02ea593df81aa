package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Shorts Factory"))
	b.WriteString("\n\n")

	if !m.Connected {
		b.WriteString(ErrorStyle.Render("Not connected to the render service"))
		if m.Err != nil {
			b.WriteString("\n" + InfoStyle.Render(m.Err.Error()))
		}
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
		return b.String()
	}

	if m.Notice != "" {
		b.WriteString(StatusStyle.Render(m.Notice))
		b.WriteString("\n\n")
	}

	if len(m.Jobs) == 0 {
		b.WriteString(HighlightStyle.Render("No videos yet"))
		b.WriteString("\n\n")
	} else {
		b.WriteString(InfoStyle.Render("Videos:"))
		b.WriteString("\n")
		for _, job := range m.Jobs {
			b.WriteString(fmt.Sprintf("  %s  %-11s %s\n",
				job.Job.JobID, statusBadge(job.Status), job.Job.Topic))
		}
		b.WriteString("\n")

		// show activity for the most recent job
		latest := m.Jobs[len(m.Jobs)-1]
		if len(latest.Logs) > 0 {
			b.WriteString(InfoStyle.Render("Recent activity:"))
			b.WriteString("\n")
			logs := latest.Logs
			if len(logs) > 5 {
				logs = logs[len(logs)-5:]
			}
			for _, entry := range logs {
				b.WriteString(InfoStyle.Render("   " + entry.Message))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}

		if latest.Result != nil {
			b.WriteString(BoxStyle.Render(formatResult(latest)))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(InfoStyle.Render("Press 'n' for a new video | Press 'q' or Ctrl+C to quit"))
	return b.String()
}

func statusBadge(status string) string {
	switch status {
	case "complete":
		return StatusStyle.Render(status)
	case "failed":
		return ErrorStyle.Render(status)
	default:
		return InfoStyle.Render(status)
	}
}

func formatResult(job JobView) string {
	var b strings.Builder
	if job.Result.Success {
		b.WriteString(HighlightStyle.Render("Video ready"))
		b.WriteString("\n\n")
		if job.Result.Provider != "" {
			b.WriteString(fmt.Sprintf("Script by: %s\n", job.Result.Provider))
		}
		if job.Result.VideoPath != "" {
			b.WriteString(fmt.Sprintf("File: %s\n", job.Result.VideoPath))
		}
		if job.Result.YouTubeURL != "" {
			b.WriteString(fmt.Sprintf("URL: %s\n", job.Result.YouTubeURL))
		}
	} else {
		b.WriteString(ErrorStyle.Render("Render failed"))
		b.WriteString("\n\n")
		for _, e := range job.Result.Errors {
			b.WriteString(e + "\n")
		}
	}
	return b.String()
}
