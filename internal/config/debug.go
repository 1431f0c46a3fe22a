package config

import "os"

func IsDebug() bool {
	return os.Getenv("HELPBOT_DEBUG") == "1"
}
