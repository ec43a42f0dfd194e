package api

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eliaswen/goat/core/config"
	"github.com/eliaswen/goat/core/dsl"
	apperrors "github.com/eliaswen/goat/core/errors"
	"github.com/eliaswen/goat/core/simulation"
	"github.com/eliaswen/goat/core/statistics"
	"github.com/eliaswen/goat/core/utils"
)

func (s *Server) handleSimulate(c *gin.Context) {
	start := time.Now()

	cfg, err := s.simulationRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.coordinator.Run(c.Request.Context(), cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.GetCode(err) == apperrors.CodeCancelled {
			status = http.StatusServiceUnavailable
		}
		s.log.Error("simulate: %v", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":           report,
		"stay_percent":     utils.Round(report.StayPercent(), 4),
		"switch_percent":   utils.Round(report.SwitchPercent(), 4),
		"statistics":       statistics.Summarize(report.StayWins, report.SwitchWins, report.Iterations),
		"request_duration": utils.FormatDuration(time.Since(start)),
	})
}

// simulationRequest reads iterations and threads from the query, bounded by
// server.maxiterations and server.maxthreads.
func (s *Server) simulationRequest(c *gin.Context) (simulation.Config, error) {
	maxIterations := s.config.Int64(config.KeyMaxIterations)
	maxThreads := s.config.Int(config.KeyMaxThreads)

	expression := c.Query("iterations")
	if expression == "" {
		return simulation.Config{}, apperrors.InvalidArgument("missing iterations")
	}
	iterations, err := dsl.ParseCount(expression)
	if err != nil {
		return simulation.Config{}, apperrors.WithCode(apperrors.CodeInvalidArgument, err)
	}
	if iterations > maxIterations {
		return simulation.Config{}, apperrors.InvalidArgument("iterations must be at most %d", maxIterations)
	}

	threads := min(runtime.NumCPU(), maxThreads)
	if raw := c.Query("threads"); raw != "" {
		threads, err = strconv.Atoi(raw)
		if err != nil || threads <= 0 || threads > maxThreads {
			return simulation.Config{}, apperrors.InvalidArgument("threads must be between 1 and %d", maxThreads)
		}
	}

	return simulation.Config{
		Iterations:  iterations,
		Workers:     threads,
		SkipConfirm: true,
	}, nil
}
