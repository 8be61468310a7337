/*
 * AGC - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/agc/config"
	"github.com/rcornwell/agc/cpu"
	"github.com/rcornwell/agc/loader"
	"github.com/rcornwell/agc/logger"
)

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "Program image to load")
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := config.Default()
	if optConfig != nil && *optConfig != "" {
		f, err := os.Open(*optConfig)
		if err != nil {
			slog.Error("can't open configuration file", "path", *optConfig, "err", err)
			os.Exit(1)
		}
		cfg, err = config.Parse(f, cfg)
		f.Close()
		if err != nil {
			slog.Error("bad configuration file", "err", err)
			os.Exit(1)
		}
	}
	if optLogFile != nil && *optLogFile != "" {
		cfg.LogFile = *optLogFile
	}
	if optProgram != nil && *optProgram != "" {
		cfg.Program = *optProgram
	}

	var out *os.File
	if cfg.LogFile != "" {
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			slog.Error("can't create log file", "path", cfg.LogFile, "err", err)
			os.Exit(1)
		}
		out = f
	}
	level := new(slog.LevelVar)
	debug := cfg.LogLevel == "debug"
	programLogger := slog.New(logger.NewHandler(out, &slog.HandlerOptions{Level: level}, &debug))
	slog.SetDefault(programLogger)

	programLogger.Info("AGC simulator started")

	if cfg.Program == "" {
		programLogger.Error("no program image given; use --program or a config 'program' line")
		os.Exit(1)
	}

	f, err := os.Open(cfg.Program)
	if err != nil {
		programLogger.Error("can't open program image", "path", cfg.Program, "err", err)
		os.Exit(1)
	}
	prog, err := loader.Load(f)
	f.Close()
	if err != nil {
		programLogger.Error("can't load program image", "err", err)
		os.Exit(1)
	}

	machine := cpu.New()
	machine.LoadProgram(cfg.FixedBank, prog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	programLogger.Info("running", "words", len(prog), "bank", cfg.FixedBank)
	if err := machine.Run(ctx, time.Duration(cfg.InstructionDelay)); err != nil {
		programLogger.Error("machine stopped with error", "err", err)
		os.Exit(1)
	}
	programLogger.Info("AGC simulator stopped")
}
