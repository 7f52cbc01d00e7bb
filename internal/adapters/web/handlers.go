package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devbush/vidrange/internal/application"
	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

type numberedLine struct {
	N    int
	Text string
}

func numbered(lines []string, from int) []numberedLine {
	out := make([]numberedLine, len(lines))
	for i, l := range lines {
		out[i] = numberedLine{N: from + i, Text: l}
	}
	return out
}

func (s *Server) listInfos() []ports.ListInfo {
	infos, err := s.svc.Lists.Lists()
	if err != nil {
		return nil
	}
	return infos
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"Lists": s.listInfos(),
		"Dir":   s.svc.Lists.Dir(),
	})
}

func (s *Server) renderError(c *gin.Context, err error) {
	message, detail := err.Error(), ""
	var toolErr *domain.ToolError
	if errors.As(err, &toolErr) {
		message = fmt.Sprintf("yt-dlp failed (exit %d).", toolErr.ExitCode)
		detail = toolErr.Stderr
	}
	c.HTML(statusFor(err), "error", gin.H{
		"Message": message,
		"Detail":  detail,
	})
}

func (s *Server) extract(c *gin.Context) {
	input := strings.TrimSpace(c.PostForm("user_input"))
	ctx := c.Request.Context()

	release, err := s.acquire()
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer release()

	if err := s.ensureTool(ctx); err != nil {
		s.renderError(c, err)
		return
	}

	result, err := s.svc.Extract.Extract(ctx, input, application.ExtractOptions{
		NoCache: c.PostForm("no_cache") != "",
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "extracted", gin.H{
		"Platform":  result.Target.Platform,
		"File":      result.ListName,
		"Dir":       s.svc.Lists.Dir(),
		"FromCache": result.FromCache,
		"URLs":      numbered(result.URLs, 1),
	})
}

// formInt reads an integer form field, returning def when absent or malformed
func formInt(c *gin.Context, field string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.PostForm(field)))
	if err != nil {
		return def
	}
	return v
}

func (s *Server) preview(c *gin.Context) {
	list, err := s.openList(c.PostForm("file"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	start := formInt(c, "start", 1)
	end := formInt(c, "end", start)
	start, end = application.DefaultBounds(start, end, list.Count())

	c.HTML(http.StatusOK, "preview", gin.H{
		"File":  list.Name,
		"Total": list.Count(),
		"Lines": numbered(list.Lines, 1),
		"Start": start,
		"End":   end,
	})
}

func (s *Server) download(c *gin.Context) {
	list, err := s.openList(c.PostForm("file"))
	if err != nil {
		c.String(statusFor(err), "%s\n", err.Error())
		return
	}

	sel, err := s.svc.Lists.SelectBounds(list, formInt(c, "start", 0), formInt(c, "end", 0))
	if err != nil {
		c.String(statusFor(err), "%s\n", err.Error())
		return
	}

	release, err := s.acquire()
	if err != nil {
		c.String(statusFor(err), "%s\n", err.Error())
		return
	}
	defer release()

	ctx := c.Request.Context()
	if err := s.ensureTool(ctx); err != nil {
		c.String(statusFor(err), "%s\n", err.Error())
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)

	log := &streamLog{w: c.Writer, flush: c.Writer.Flush}
	log.printf("Downloading %d videos → %s\n", len(sel.URLs), s.svc.Downloads.OutputDir(sel.List))

	if _, err := s.svc.Downloads.Run(ctx, sel, log); err != nil {
		log.printf("\nStopped: %s\n", err)
		return
	}
	log.printf("\nAll tasks finished.\n")
}

// streamLog writes the download log as items progress
type streamLog struct {
	w     io.Writer
	flush func()
}

func (l *streamLog) printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
	if l.flush != nil {
		l.flush()
	}
}

func (l *streamLog) ItemStarted(index, total int, url string) {
	l.printf("\n[%d/%d] URL: %s\n", index, total, url)
}

func (l *streamLog) ItemProgress(index int, downloaded, total int64) {}

func (l *streamLog) ItemFinished(result domain.ItemResult) {
	if result.Success {
		l.printf("✔ Done\n")
		return
	}
	l.printf("✖ Failed (exit %d)\n", result.ExitCode)
	if msg := strings.TrimRight(result.Error, "\n"); msg != "" {
		l.printf("%s\n", msg)
	}
}

var _ application.BatchObserver = (*streamLog)(nil)
