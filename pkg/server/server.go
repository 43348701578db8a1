/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server exposes the optimizer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/shelfopt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/shelfopt/pkg/framework"
	"github.com/mihai-snyk/shelfopt/pkg/optimizer"
)

const shutdownTimeout = 10 * time.Second

type handler struct {
	logger    klog.Logger
	optimizer *optimizer.Optimizer
}

// NewRouter builds the HTTP routes. Metrics are served from gatherer.
func NewRouter(ctx context.Context, o *optimizer.Optimizer, gatherer prometheus.Gatherer) *gin.Engine {
	h := &handler{
		logger:    klog.FromContext(ctx).WithValues("component", "server"),
		optimizer: o,
	}

	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests(), cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.POST("/run", h.run)
	return r
}

func (h *handler) run(c *gin.Context) {
	var req v1alpha1.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1alpha1.ErrorResponse{Error: fmt.Sprintf("malformed request body: %v", err)})
		return
	}

	ctx := klog.NewContext(c.Request.Context(), h.logger)
	res, err := h.optimizer.Run(ctx, &req)
	switch {
	case errors.Is(err, framework.ErrEmptyCatalog):
		c.JSON(http.StatusUnprocessableEntity, v1alpha1.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, optimizer.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, v1alpha1.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.Error(err, "Optimizer run failed")
		c.JSON(http.StatusInternalServerError, v1alpha1.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, v1alpha1.Convert_framework_RunResult_To_v1alpha1_RunResponse(res))
}

// cors allows any origin, method and header. Preflight requests end here.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		header := c.Writer.Header()
		// Credentials cannot be combined with a literal "*", so the caller's origin is echoed.
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			methods := c.GetHeader("Access-Control-Request-Method")
			if methods == "" {
				methods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
			}
			headers := c.GetHeader("Access-Control-Request-Headers")
			if headers == "" {
				headers = "*"
			}
			header.Set("Access-Control-Allow-Methods", methods)
			header.Set("Access-Control-Allow-Headers", headers)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (h *handler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.V(2).Info("Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

// Run serves handler on addr until ctx is cancelled
func Run(ctx context.Context, addr string, handler http.Handler) error {
	logger := klog.FromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
