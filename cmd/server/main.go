package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/clickchess/internal/cli"
)

// server is chessterm serve as its own binary. Sessions run "server play",
// so that command passes through.
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		PadLevelText:  true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	root := cli.Root()
	args := os.Args[1:]
	if len(args) == 0 || args[0] != "play" {
		args = append([]string{"serve"}, args...)
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
