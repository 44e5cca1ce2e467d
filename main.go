package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/icompta-ledger/cmd/batch"
	"fjacquet/icompta-ledger/cmd/convert"
	"fjacquet/icompta-ledger/cmd/entries"
	"fjacquet/icompta-ledger/cmd/root"
	"fjacquet/icompta-ledger/cmd/rules"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load .env before the first logger is configured.
	loadEnvSilently()
	logrus.SetLevel(logLevelFromEnv())

	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(entries.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// logLevelFromEnv returns the level named by LOG_LEVEL, info by default.
func logLevelFromEnv() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		return logrus.InfoLevel
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		return logrus.InfoLevel
	}
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
