package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/cpu"
)

const (
	// DefaultProfileFileName is the profile file created in the home directory.
	DefaultProfileFileName = ".parbench_calibration.json"
	// CurrentProfileVersion is bumped whenever the profile layout changes.
	CurrentProfileVersion = 1
	// DefaultMaxProfileAge after which a cached profile is ignored.
	DefaultMaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile stores the outcome of a calibration together with the
// machine it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CPUFeatures    []string  `json:"cpu_features,omitempty"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	OptimalSortThreshold int    `json:"optimal_sort_threshold"`
	CalibrationSize      int    `json:"calibration_size"`
	CalibrationBudget    int    `json:"calibration_budget"`
	CalibrationTime      string `json:"calibration_time"`
}

// NewProfile creates a profile describing the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    cpuFeatures(),
		CalibratedAt:   time.Now(),
	}
}

// cpuFeatures lists the SIMD and atomic extensions relevant to memory-bound
// kernels, as reported by golang.org/x/sys/cpu.
func cpuFeatures() []string {
	var features []string
	add := func(name string, ok bool) {
		if ok {
			features = append(features, name)
		}
	}
	add("sse4.2", cpu.X86.HasSSE42)
	add("avx", cpu.X86.HasAVX)
	add("avx2", cpu.X86.HasAVX2)
	add("avx512f", cpu.X86.HasAVX512F)
	add("bmi2", cpu.X86.HasBMI2)
	add("asimd", cpu.ARM64.HasASIMD)
	add("atomics", cpu.ARM64.HasATOMICS)
	add("sve", cpu.ARM64.HasSVE)
	return features
}

// IsValid reports whether the profile was measured on a machine like this one.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.OptimalSortThreshold > 0
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	features := "none"
	if len(p.CPUFeatures) > 0 {
		features = strings.Join(p.CPUFeatures, ",")
	}
	return fmt.Sprintf("CalibrationProfile{sort threshold=%d, size=%d, budget=%d, cpus=%d, arch=%s/%s, features=%s, at=%s}",
		p.OptimalSortThreshold, p.CalibrationSize, p.CalibrationBudget,
		p.NumCPU, p.GOOS, p.GOARCH, features, p.CalibratedAt.Format(time.RFC3339))
}

// SaveProfile writes the profile as JSON. The file is written to a temporary
// name first and renamed, so readers never see a partial profile.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal calibration profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write calibration profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename calibration profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When the file is missing or
// unreadable it returns a fresh profile and loaded=false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/.parbench_calibration.json, or the file
// name alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
