package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/clickchess/internal/cli"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := chessterm(os.Args[1:]); err != nil {
		logrus.Fatal(err)
	}
}

func chessterm(args []string) error {
	root := cli.Root()
	root.SetArgs(args)
	return root.Execute()
}
