package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	ENV          = "ENV"
	PORT         = "PORT"
	MONGODB_URI  = "MONGODB_URI"
	REDIS_URI    = "REDIS_URI"
	AUTH_API_URL = "AUTH_API_URL"
	WEBHOOK_URL  = "WEBHOOK_URL"

	ENV_DEVELOPMENT = "development"
	ENV_HOMOLOG     = "staging"
	ENV_RELEASE     = "production"
)

var allowedKeys = []string{ENV, PORT, MONGODB_URI, REDIS_URI, AUTH_API_URL, WEBHOOK_URL}

// WEBHOOK_URL may be absent; outbound messaging is disabled without it.
var requiredKeys = []string{ENV, PORT, MONGODB_URI, REDIS_URI, AUTH_API_URL}

var allowedEnvValues = []string{ENV_DEVELOPMENT, ENV_HOMOLOG, ENV_RELEASE}

func LoadEnvVariables() {
	workDir, err := os.Getwd()
	if err != nil {
		panic("[ENV] Cannot resolve working directory: " + err.Error())
	}

	filePath := filepath.Join(workDir, ".env")

	file, err := os.Open(filePath)
	if err != nil {
		panic("[ENV] Cannot open .env file: " + err.Error())
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		panic("[ENV] Cannot stat .env file: " + err.Error())
	}

	if fileInfo.Size() == 0 {
		panic("[ENV] .env file is empty")
	}

	foundKeys := make(map[string]bool)
	for _, key := range requiredKeys {
		foundKeys[key] = false
	}

	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			panic(fmt.Sprintf("[ENV] Malformed line %d: %s", lineNum, line))
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) > 1 && (strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"")) ||
			(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
			value = value[1 : len(value)-1]
		}

		if key == ENV {
			isValidEnv := slices.Contains(allowedEnvValues, value)

			if !isValidEnv {
				panic(fmt.Sprintf("[ENV] Invalid value for ENV: %s. Allowed values: %s",
					value, strings.Join(allowedEnvValues, ", ")))
			}
		}

		isAllowed := slices.Contains(allowedKeys, key)

		if !isAllowed {
			panic(fmt.Sprintf("[ENV] Key '%s' is not allowed. Allowed keys: %s",
				key, strings.Join(allowedKeys, ", ")))
		}

		if err := os.Setenv(key, value); err != nil {
			panic("[ENV] Cannot set environment variable " + key + ": " + err.Error())
		}

		if _, exists := foundKeys[key]; exists {
			foundKeys[key] = true
		}
	}

	if err := scanner.Err(); err != nil {
		panic("[ENV] Cannot read .env file: " + err.Error())
	}

	var missingKeys []string
	for key, found := range foundKeys {
		if !found {
			missingKeys = append(missingKeys, key)
		}
	}

	if len(missingKeys) > 0 {
		panic(fmt.Sprintf("[ENV] Missing required environment variables: %s",
			strings.Join(missingKeys, ", ")))
	}
}
