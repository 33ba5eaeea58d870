package engine

import (
	"os"
	"path/filepath"
	"runtime"
)

// LibPathEnv overrides library discovery when set.
const LibPathEnv = "KESTREL_LIB_PATH"

// libraryName returns the platform file name of the native core.
func libraryName() string {
	switch runtime.GOOS {
	case "darwin", "ios":
		return "libkestrel_core.dylib"
	case "windows":
		return "kestrel_core.dll"
	default:
		return "libkestrel_core.so"
	}
}

// findLibrary locates the native core library. Order: env override, working
// directory, development build trees, executable-relative paths. When
// nothing matches it returns the bare name and lets the loader search the
// system paths.
func findLibrary() string {
	if path := os.Getenv(LibPathEnv); path != "" {
		return path
	}

	name := libraryName()
	searchPaths := []string{
		name,
		filepath.Join("core", "target", "release", name),
		filepath.Join("core", "target", "debug", name),
	}

	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, name),
			filepath.Join(execDir, "..", "lib", name),
		)
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}

	return name
}
