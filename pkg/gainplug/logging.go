package gainplug

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/justyntemme/gainplug/pkg/framework/debug"
)

// LogFileName is created under ~/tmp.
const LogFileName = "IMGUIBaseplugBaseviewTest.log"

// LogPath returns the log file location for the current user.
func LogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate log directory: %w", err)
	}
	return filepath.Join(home, "tmp", LogFileName), nil
}

// SetupLogging sends the default logger to LogPath at Info level with local
// timestamps. Recovered processing panics end up there too. The returned
// function restores the previous logger.
func SetupLogging() (func() error, error) {
	path, err := LogPath()
	if err != nil {
		return nil, err
	}
	restore, err := debug.SetupFileLogging(path, "gainplug", debug.LogLevelInfo)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	debug.Info("%s %s logging to %s", Info.Name, Info.Version, path)
	return restore, nil
}
