// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethersphere/mtree/pkg/logging"
	"github.com/ethersphere/mtree/pkg/metrics"
	"github.com/sirupsen/logrus"
)

func TestLoggerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(&buf, logrus.InfoLevel)

	logger.Debug("hidden")
	logger.Infof("tree built %d", 4)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug message logged at info level: %q", got)
	}
	if !strings.Contains(got, "tree built 4") {
		t.Errorf("info message missing: %q", got)
	}
}

func TestLoggerMetrics(t *testing.T) {
	t.Parallel()

	logger := logging.New(&bytes.Buffer{}, logrus.TraceLevel)
	reg := metrics.NewRegistry()
	reg.MustRegister(logging.Metrics(logger)...)

	logger.Warning("one")
	logger.Warning("two")
	logger.Trace("three")

	var buf bytes.Buffer
	if err := metrics.WriteText(&buf, reg); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"mtree_log_warn_count 2",
		"mtree_log_trace_count 1",
		"mtree_log_error_count 0",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("metrics output does not contain %q", want)
		}
	}
}
