// Command modelgen writes the canonical classifier artifacts to a target
// directory. It stands in for the offline training pipeline: the server only
// ever consumes the exported parameter sets, never the trainer itself.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"seelikeme/internal/model"
	"seelikeme/pkg/types"
)

func main() {
	dir := flag.String("dir", "./models", "target directory for model artifacts")
	flag.Parse()

	if err := run(*dir); err != nil {
		log.Fatal(err)
	}
}

func run(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	// Canonical artifact name per domain - the same list the loader checks
	names := map[string]string{
		types.DomainDyslexia: model.ArtifactDyslexia,
		types.DomainADHD:     model.ArtifactADHD,
		types.DomainAutism:   model.ArtifactAutism,
	}

	for _, artifact := range model.DefaultArtifacts() {
		path := filepath.Join(dir, names[artifact.Domain])

		data, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s artifact: %w", artifact.Domain, err)
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		log.Printf("Wrote artifact: %s (domain=%s method=%s accuracy=%.2f)",
			path, artifact.Domain, artifact.Method, artifact.Accuracy)
	}

	return nil
}
