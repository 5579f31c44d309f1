package main

import (
	"shopfront/internal/api"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("App start")
	if err := api.StartServer(); err != nil {
		logrus.Fatalf("App failed: %v", err)
	}
	logrus.Info("App terminated")
}
