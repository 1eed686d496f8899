package profile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML profile and returns it with its raw bytes
// ⭐ SSOT: KnownFields(true) fails fast on typos and unused fields
func Load(path string) (*Profile, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	p, err := Parse(data)
	if err != nil {
		return nil, data, err
	}
	return p, data, nil
}

// Parse decodes and validates a YAML profile
func Parse(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}

	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Hash returns the SHA256 of the profile's canonical JSON
func Hash(p *Profile) (string, error) {
	// encoding/json sorts map keys, so equal profiles hash equally
	jsonBytes, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// RunSnapshot ties a pipeline run to the profile it used
type RunSnapshot struct {
	RunID       string    `json:"run_id"`
	ProfileID   string    `json:"profile_id"`
	ProfileHash string    `json:"profile_hash"`
	ProfileYAML string    `json:"profile_yaml,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRunSnapshot creates a snapshot for runID
func NewRunSnapshot(p *Profile, yamlData []byte, runID string) (*RunSnapshot, error) {
	hash, err := Hash(p)
	if err != nil {
		return nil, err
	}

	return &RunSnapshot{
		RunID:       runID,
		ProfileID:   p.Meta.ProfileID,
		ProfileHash: hash,
		ProfileYAML: string(yamlData),
		CreatedAt:   time.Now(),
	}, nil
}
