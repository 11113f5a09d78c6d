/*
   Copyright 2025 The DIRPX Authors.

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

// Package logger hands out the logrus logger shared by every genesis package.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "GENESIS_LOGLEVEL"

var log = logrus.New()

// Get returns the shared logger with its level refreshed from GENESIS_LOGLEVEL.
func Get() *logrus.Logger {
	switch strings.ToLower(os.Getenv(EnvLevel)) {
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// For returns an entry tagged with the given component prefix.
func For(prefix string) *logrus.Entry {
	return Get().WithField("prefix", prefix)
}
