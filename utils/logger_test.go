/*
 * Copyright 2026 yeonilabs.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefaultLevels(t *testing.T) {
	t.Helper()
	console, file := defaultConsoleLevel, defaultFileLevel
	t.Cleanup(func() {
		defaultConsoleLevel = console
		defaultFileLevel = file
		applyBaseLevelToRegistered()
	})
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want logrus.Level
	}{
		{"trace", logrus.TraceLevel},
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{" WARN ", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
		{"panic", logrus.PanicLevel},
		{"verbose", logrus.InfoLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseLogLevel(c.in), "input %q", c.in)
	}
}

func TestLoggerRegistryLevels(t *testing.T) {
	restoreDefaultLevels(t)

	l := NewLogger("UTILTEST")
	require.NotNil(t, l)

	assert.True(t, SetLoggerLevel("UTILTEST", "error"))
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())

	assert.False(t, SetLoggerLevel("NO_SUCH_LOGGER", "error"))

	ConfigureLogLevel("warn")
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())

	SetAllLoggersLevel(logrus.DebugLevel)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestJSONLogFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "CACHE"}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.InfoLevel,
		Message: "warmed 3 entries",
		Data:    logrus.Fields{"rows": 3},
	}

	b, err := f.Format(entry)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "CACHE", rec["logger"])
	assert.Equal(t, "warmed 3 entries", rec["message"])
	fields, ok := rec["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), fields["rows"])
}

func TestDailyRollingFileHook(t *testing.T) {
	restoreDefaultLevels(t)

	dir := t.TempDir()
	l := logrus.New()
	l.SetOutput(io.Discard)
	require.NoError(t, AddDailyRollingFileHook(l, "ROLLTEST", dir, 3))

	l.Info("첫 로그 기록")
	l.Error("디스크 연결 끊김")

	date := time.Now().Format("2006-01-02")
	infoLog, err := os.ReadFile(filepath.Join(dir, date, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(infoLog), "첫 로그 기록")

	errorLog, err := os.ReadFile(filepath.Join(dir, date, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errorLog), "디스크 연결 끊김")
}

func TestDotPathCompact(t *testing.T) {
	assert.Equal(t, "database.manager.go", dotPathCompact("database/manager.go", 30))
	assert.Equal(t, "d.manager.go", dotPathCompact("database/manager.go", 15))
	assert.Equal(t, "", dotPathCompact("database/manager.go", 0))

	// Directories abbreviate before the filename gives way.
	got := dotPathCompact("internal/platform/config/config.go", 16)
	assert.Equal(t, "i.p.c.config.go", got)

	// A filename longer than max keeps its tail.
	got = dotPathCompact("verylongfilename.go", 5)
	assert.Len(t, got, 5)
	assert.Equal(t, "me.go", got)
}

func TestRuneHelpers(t *testing.T) {
	assert.Equal(t, "데이터", limitRunes("데이터베이스", 3))
	assert.Equal(t, "db", limitRunes("db", 5))
	assert.Equal(t, "   db", padLeftRunes("db", 5))
	assert.Equal(t, "데이터베이스", padLeftRunes("데이터베이스", 3))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UTILS_TEST_STR", "set")
	assert.Equal(t, "set", EnvDefaultString("UTILS_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", EnvDefaultString("UTILS_TEST_MISSING", "fallback"))

	t.Setenv("UTILS_TEST_BOOL", "true")
	assert.True(t, EnvDefaultBool("UTILS_TEST_BOOL", false))
	t.Setenv("UTILS_TEST_BOOL", "0")
	assert.False(t, EnvDefaultBool("UTILS_TEST_BOOL", true))
	assert.True(t, EnvDefaultBool("UTILS_TEST_BOOL_MISSING", true))
}
