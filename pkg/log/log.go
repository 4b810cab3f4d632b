// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2026-present the relaymon authors.

// Package log is the leveled logger used by every core package. It wraps
// cihub/seelog so the agent logs the way the rest of the process does,
// instead of reaching for the stdlib log package.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/cihub/seelog"
)

var (
	mu      sync.RWMutex
	current seelog.LoggerInterface = seelog.Disabled
)

// Setup installs a new seelog logger writing at minLevel and above to w.
// Safe to call again later (e.g. after config reload) to swap loggers.
func Setup(w io.Writer, minLevel string) error {
	config := fmt.Sprintf(`
<seelog minlevel="%s">
	<outputs formatid="main">
		<custom name="writer"/>
	</outputs>
	<formats>
		<format id="main" format="%%Date(2006-01-02 15:04:05.000) [%%LEVEL] %%Msg%%n"/>
	</formats>
</seelog>`, minLevel)

	// RegisterReceiver errors on a second call with the same name; harmless
	// on a config reload, so the error is discarded.
	_ = seelog.RegisterReceiver("writer", func() interface{} { return &writerReceiver{w: w} })

	logger, err := seelog.LoggerFromConfigAsBytes([]byte(config))
	if err != nil {
		return err
	}
	mu.Lock()
	current = logger
	mu.Unlock()
	return nil
}

func logger() seelog.LoggerInterface {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Debugf(format string, args ...interface{}) { logger().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { logger().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { _ = logger().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { _ = logger().Errorf(format, args...) }

// writerReceiver adapts an io.Writer into a seelog custom receiver.
type writerReceiver struct {
	w io.Writer
}

func (r *writerReceiver) ReceiveMessage(message string, level seelog.LogLevel, context seelog.LogContextInterface) error {
	_, err := io.WriteString(r.w, message)
	return err
}

func (r *writerReceiver) AfterParse(initArgs seelog.CustomReceiverInitArgs) error { return nil }
func (r *writerReceiver) Flush()                                                 {}
func (r *writerReceiver) Close() error                                           { return nil }
