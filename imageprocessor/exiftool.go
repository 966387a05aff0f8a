package imageprocessor

import (
	"os/exec"
	"strings"

	"github.com/barasher/go-exiftool"

	"printsize/logging"
)

// Check if exiftool is available on the system
func hasExiftool() bool {
	_, err := exec.LookPath("exiftool")
	return err == nil
}

// readDPIWithExiftool asks exiftool for the resolution tags of formats the
// built-in readers do not cover.
func readDPIWithExiftool(path string) (float64, float64, bool) {
	if !hasExiftool() {
		logging.DebugLog("exiftool not found in PATH, skipping fallback for %s", path)
		return 0, 0, false
	}

	et, err := exiftool.NewExiftool()
	if err != nil {
		logging.LogError("Failed to initialize exiftool: %v", err)
		return 0, 0, false
	}
	defer et.Close()

	fileInfos := et.ExtractMetadata(path)
	if len(fileInfos) == 0 {
		return 0, 0, false
	}
	fileInfo := fileInfos[0]
	if fileInfo.Err != nil {
		logging.LogError("Error extracting metadata: %v", fileInfo.Err)
		return 0, 0, false
	}

	x, err := fileInfo.GetFloat("XResolution")
	if err != nil {
		return 0, 0, false
	}
	y, err := fileInfo.GetFloat("YResolution")
	if err != nil {
		return 0, 0, false
	}

	unit, _ := fileInfo.GetString("ResolutionUnit")
	switch strings.ToLower(unit) {
	case "cm":
		x *= 2.54
		y *= 2.54
	case "none":
		return 0, 0, false
	}

	logging.LogInfo("exiftool resolution for %s: %.2f x %.2f (%s)", path, x, y, unit)
	return x, y, true
}
