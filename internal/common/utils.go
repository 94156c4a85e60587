// Package common holds functions and structs that are used throughout all other
// packages in this repository.
// It mainly provides project name validation and the file logger.
package common

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

var (
	// ErrNameRequired is returned when the candidate project name is empty.
	ErrNameRequired = errors.New("project name is required")

	// ErrNameTaken is returned when a filesystem entry with the candidate
	// name already exists in the current directory.
	ErrNameTaken = errors.New("a file or directory with this name already exists")

	// ErrNameInvalid is returned when the candidate name contains characters
	// outside of letters, digits, dash and underscore.
	ErrNameInvalid = errors.New("invalid project name")
)

// GetCurrentWorkingDir gets the current working directory.
func GetCurrentWorkingDir() string {
	pwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return pwd
}

// IsValidProjectName checks if a name is safe to use as a project directory
// and remote repository name (alphanumeric, dash, underscore only).
func IsValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	pattern := `^[a-zA-Z0-9_-]+$`
	matched, _ := regexp.MatchString(pattern, name)
	return matched
}

// ValidateProjectName checks a candidate project name against the current
// working directory. Rules are checked in order and only the first failing
// rule is reported: empty name, then path collision, then character set.
func ValidateProjectName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("%w: %s", ErrNameTaken, name)
	}
	if !IsValidProjectName(name) {
		return fmt.Errorf("%w: %s (use letters, digits, '-' or '_')", ErrNameInvalid, name)
	}
	return nil
}
