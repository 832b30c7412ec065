package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"imgconv/internal/adapters/codec"
	"imgconv/internal/adapters/gui"
	"imgconv/internal/core/domain"
	"imgconv/internal/core/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const logFileName = "imgconv.log"

func main() {
	guiMode := flag.Bool("gui", false, "launch graphical mode")
	flag.Parse()

	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("convert.jpeg_quality", 95)
	viper.SetDefault("convert.timeout", "60s")
	viper.SetDefault("validate.max_file_size_mib", 100)

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("could not read config file")
		}
	}

	setupLogging()

	converter := codec.NewConverter()
	pipeline := service.NewPipeline(service.NewValidator(converter), converter)

	if *guiMode || flag.NArg() == 0 {
		log.Info().Msg("starting imgconv gui...")
		gui.New(pipeline, converter).Run()
		return
	}

	os.Exit(runCLI(pipeline, flag.Args(), os.Stdout, os.Stderr))
}

// runCLI executes the command-line conversion path and returns the process
// exit code. Usage help for a missing positional argument goes to stdout and
// performs no conversion.
func runCLI(pipeline *service.Pipeline, args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(stdout, "usage: %s [--gui] <input_file> <output_file>\n", filepath.Base(os.Args[0]))
		return 0
	}

	outcome := pipeline.Run(context.Background(), domain.ConversionRequest{
		InputPath:  args[0],
		OutputPath: args[1],
	}, nil, nil)

	if !outcome.Success {
		fmt.Fprintln(stderr, outcome.Message)
		return 1
	}

	fmt.Fprintln(stdout, outcome.Message)
	return 0
}

func setupLogging() {
	var logLevel zerolog.Level

	switch viper.GetString("app.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warn().Err(err).Msg("could not open log file, logging to stderr only")
	} else {
		writers = append(writers, logFile)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}
