// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/placewise/placematch/internal/matcher"
	"github.com/placewise/placematch/pkg/api"
	"github.com/placewise/placematch/pkg/config"
	"github.com/placewise/placematch/pkg/db"
	"github.com/placewise/placematch/pkg/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	logger := utils.NewLogger("placematch ")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	opts := matcher.Options{
		LearningRate:      cfg.Engine.LearningRate,
		BufferCap:         cfg.Engine.BufferCap,
		ReweightThreshold: cfg.Engine.ReweightThreshold,
		CacheTTL:          time.Duration(cfg.Engine.CacheTTLMinutes) * time.Minute,
		Seed:              cfg.Engine.Seed,
	}

	if cfg.DBCreds != nil {
		pool, err := db.NewConnection(db.DBCreds{
			Host:     cfg.DBCreds.Host,
			Port:     cfg.DBCreds.Port,
			Username: cfg.DBCreds.Username,
			Password: cfg.DBCreds.Password,
			Database: cfg.DBCreds.Database,
		})
		if err != nil {
			logger.Fatal("Failed to connect to feedback database: %v", err)
		}
		defer pool.Close()
		opts.Sink = matcher.NewPostgresSink(pool)
		logger.Info("Feedback audit sink enabled")
	}

	// One engine per process; handlers share it by reference.
	engine := matcher.NewEngine(opts)

	if path := cfg.Engine.ModelPath; path != "" {
		if err := engine.LoadModel(path); err != nil {
			logger.Warn("No saved model at %s, starting fresh (%v)", path, err)
		} else {
			logger.Info("Loaded model from %s", path)
		}
	}

	router := gin.Default()
	api.SetupRoutes(router, engine)

	go func() {
		logger.Info("Starting server on %s", cfg.Server.Addr)
		if err := router.Run(cfg.Server.Addr); err != nil {
			logger.Fatal("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if path := cfg.Engine.ModelPath; path != "" {
		if err := engine.SaveModel(path); err != nil {
			logger.Error("Failed to save model: %v", err)
		} else {
			logger.Info("Saved model to %s", path)
		}
	}
	logger.Info("Shutting down")
}
