// Package bench runs chainmap workloads and compares their results
// against a stored baseline.
package bench

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Result holds the metrics collected for one workload.
type Result struct {
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Summary is the file format written by "chainmap-bench run".
type Summary struct {
	Timestamp string   `json:"timestamp"`
	CommitID  string   `json:"commit_id"`
	Branch    string   `json:"branch"`
	GoVersion string   `json:"go_version"`
	System    string   `json:"system,omitempty"`
	Results   []Result `json:"results"`
}

// NewSummary returns an empty summary stamped with the current time and
// toolchain.
func NewSummary(commitID, branch string) Summary {
	return Summary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		System:    runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// LoadSummary reads a summary written by Save.
func LoadSummary(path string) (Summary, error) {
	var s Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrap(err, "failed to read summary")
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "failed to parse summary %s", path)
	}
	return s, nil
}

// Save writes the summary as indented JSON, creating parent directories.
func (s Summary) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "failed to create directory")
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshaling JSON")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "error writing file")
	}
	return nil
}

// DetectGit reads the current branch and abbreviated commit from the
// .git directory under repoRoot. It falls back to "local" and "dev".
func DetectGit(repoRoot string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	head, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return commitID, branch
	}
	headContent := strings.TrimSpace(string(head))
	if !strings.HasPrefix(headContent, "ref: ") {
		// Detached HEAD holds the commit itself.
		return abbreviate(headContent), branch
	}

	ref := strings.TrimPrefix(headContent, "ref: ")
	if strings.HasPrefix(ref, "refs/heads/") {
		branch = strings.TrimPrefix(ref, "refs/heads/")
	}
	if commit, err := os.ReadFile(filepath.Join(repoRoot, ".git", ref)); err == nil {
		commitID = abbreviate(strings.TrimSpace(string(commit)))
	}
	return commitID, branch
}

func abbreviate(commit string) string {
	if len(commit) >= 8 {
		return commit[:8]
	}
	return commit
}
