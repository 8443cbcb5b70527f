package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-conway/model"
	"github.com/sheikhrachel/go-conway/utils"
)

const defaultConfigFile = "config.json"

// parseConfig layers defaults, the JSON config file, GOL_* environment variables and flags, in that order
func parseConfig(args []string) (utils.Config, error) {
	var (
		fs        = flag.NewFlagSet("go-conway", flag.ContinueOnError)
		flagCfg   = utils.DefaultConfig()
		cfgFile   = fs.String("config", defaultConfigFile, "path to a JSON config file")
		boardFile = fs.String("board", "", "path to a text board ('x' alive, ' ' or '.' dead); overrides -pattern")
	)
	fs.IntVar(&flagCfg.Width, "width", flagCfg.Width, "grid width")
	fs.IntVar(&flagCfg.Height, "height", flagCfg.Height, "grid height")
	fs.StringVar(&flagCfg.Pattern, "pattern", flagCfg.Pattern, "starting pattern: random, glider or blinker")
	fs.Float64Var(&flagCfg.RandomDensity, "density", flagCfg.RandomDensity, "probability a random cell starts alive")
	fs.Int64Var(&flagCfg.Seed, "seed", flagCfg.Seed, "random seed; 0 picks a fresh seed and logs it, so seed 0 itself cannot be replayed")
	fs.DurationVar(&flagCfg.FrameRate, "frame-rate", flagCfg.FrameRate, "delay between generations")
	fs.IntVar(&flagCfg.MaxGenerations, "max-generations", flagCfg.MaxGenerations, "stop after this many generations, 0 runs forever")
	fs.IntVar(&flagCfg.Workers, "workers", flagCfg.Workers, "goroutines used per generation")
	fs.BoolVar(&flagCfg.StopOnStagnation, "stop-on-stagnation", flagCfg.StopOnStagnation, "stop once the board stops changing")
	fs.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return utils.Config{}, errors.Wrap(err, "[parseConfig] failed to parse flags")
	}

	config, err := utils.LoadConfig(*cfgFile)
	if err != nil {
		// A missing default config file is expected; anything else is not
		if !os.IsNotExist(errors.Cause(err)) || *cfgFile != defaultConfigFile {
			return utils.Config{}, err
		}
		log.Debugf("%s not found, using default configuration", *cfgFile)
		config = utils.DefaultConfig()
	}

	if err = utils.ApplyEnv(&config); err != nil {
		return utils.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			config.Width = flagCfg.Width
		case "height":
			config.Height = flagCfg.Height
		case "pattern":
			config.Pattern = flagCfg.Pattern
		case "board":
			config.BoardFile = *boardFile
		case "density":
			config.RandomDensity = flagCfg.RandomDensity
		case "seed":
			config.Seed = flagCfg.Seed
		case "frame-rate":
			config.FrameRate = flagCfg.FrameRate
		case "max-generations":
			config.MaxGenerations = flagCfg.MaxGenerations
		case "workers":
			config.Workers = flagCfg.Workers
		case "stop-on-stagnation":
			config.StopOnStagnation = flagCfg.StopOnStagnation
		case "log-level":
			config.LogLevel = flagCfg.LogLevel
		}
	})

	if err = config.Validate(); err != nil {
		return utils.Config{}, err
	}
	return config, nil
}

// initializeGame builds the engine for the configured starting board and returns the seed it used
func initializeGame(config utils.Config) (*model.Engine, int64, error) {
	seed := config.Seed
	if seed == 0 {
		var err error
		if seed, err = model.NewSeed(); err != nil {
			return nil, 0, err
		}
	}

	var (
		width, height = config.Width, config.Height
		board         [][]model.Cell
		err           error
	)
	switch {
	case config.BoardFile != "":
		data, readErr := os.ReadFile(config.BoardFile)
		if readErr != nil {
			return nil, 0, errors.Wrapf(readErr, "[initializeGame] failed to read board file: %+v", config.BoardFile)
		}
		if board, err = model.ParseBoard(string(data)); err != nil {
			return nil, 0, errors.Wrapf(err, "[initializeGame] failed to parse board file: %+v", config.BoardFile)
		}
		// the drawn board decides the grid size
		height, width = len(board), len(board[0])
	case config.Pattern != model.PatternRandom:
		if board, err = model.PatternBoard(config.Pattern, width, height, config.RandomDensity, nil); err != nil {
			return nil, 0, err
		}
	}

	engine, err := model.NewEngine(width, height, board,
		model.WithRand(model.NewRand(seed)),
		model.WithAliveProbability(config.RandomDensity),
		model.WithWorkers(config.Workers),
	)
	if err != nil {
		return nil, 0, err
	}
	return engine, seed, nil
}

// displayGameInfo logs the starting parameters
func displayGameInfo(config utils.Config, engine *model.Engine, seed int64) {
	log.WithFields(log.Fields{
		"seed":           seed,
		"width":          engine.Width(),
		"height":         engine.Height(),
		"pattern":        config.Pattern,
		"board_file":     config.BoardFile,
		"workers":        config.Workers,
		"living_cells":   engine.Population(),
		"frame_rate":     config.FrameRate.String(),
		"max_generation": config.MaxGenerations,
	}).Info("starting game of life")
}

// runGame renders and advances the engine until ctx is cancelled or a stop condition is met
func runGame(ctx context.Context, engine *model.Engine, out io.Writer, config utils.Config) (*utils.Stats, error) {
	var (
		renderer      = model.NewTerminalRenderer(out)
		stats         = utils.NewStats()
		history       utils.History
		stagnantCount = 0
		lastFrameTime = time.Now()
	)

	for {
		select {
		case <-ctx.Done():
			return stats, nil
		default:
		}

		frameStart := time.Now()
		snap := engine.Snapshot()
		population := snap.Population()

		stats.Update(snap.Generation(), population, time.Since(lastFrameTime))
		lastFrameTime = frameStart

		if history.Observe(snap.Hash()) {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if err := renderer.Clear(); err != nil {
			return stats, err
		}
		if err := displayGameStatus(out, snap, population, stats, stagnantCount); err != nil {
			return stats, err
		}
		if err := renderer.Display(snap); err != nil {
			return stats, err
		}

		if done, reason := checkStopConditions(snap.Generation(), population, stagnantCount, config); done {
			log.WithFields(log.Fields{
				"generation": snap.Generation(),
				"population": population,
				"reason":     reason,
			}).Info("stopping")
			return stats, nil
		}

		engine.Advance()

		if config.FrameRate > 0 {
			timer := time.NewTimer(config.FrameRate)
			select {
			case <-ctx.Done():
				timer.Stop()
				return stats, nil
			case <-timer.C:
			}
		}
	}
}

// displayGameStatus writes the one-line status header shown above the board
func displayGameStatus(out io.Writer, snap model.Snapshot, population int, stats *utils.Stats, stagnantCount int) error {
	status := "Active"
	switch {
	case population == 0:
		status = "Extinct"
	case stagnantCount > 0:
		status = fmt.Sprintf("Stagnant (%d)", stagnantCount)
	}

	density := float64(population) / float64(snap.Width()*snap.Height()) * 100
	_, err := fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s | %.1f gen/sec\n",
		snap.Generation(), population, density, status, stats.GenerationsPerSecond)
	if err != nil {
		return errors.Wrap(err, "[displayGameStatus] failed to write status")
	}
	return nil
}

// checkStopConditions determines if the game should end after the current frame
func checkStopConditions(generation, population, stagnantCount int, config utils.Config) (bool, string) {
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return true, "max generations reached"
	}
	if !config.StopOnStagnation {
		return false, ""
	}
	if population == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}
